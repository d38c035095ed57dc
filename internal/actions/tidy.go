package actions

import (
	"context"
	"fmt"

	"braid.dev/braid/internal/runtime"
	"braid.dev/braid/internal/template"
	"braid.dev/braid/internal/tui"
	"braid.dev/braid/internal/utils"
)

// TidyPlanOptions controls which branches and files a tidy plan targets
type TidyPlanOptions struct {
	IncludeCurrentBranch bool
	OrphansOnly          bool
}

// TidyPlan is the set of branches and orphaned template files a tidy run
// will clean up.
type TidyPlan struct {
	TargetBranches  []template.ConfiguredBranch
	OrphanTemplates []string
}

// Empty reports whether the plan has nothing to do.
func (p *TidyPlan) Empty() bool {
	return len(p.TargetBranches) == 0 && len(p.OrphanTemplates) == 0
}

// TidyExecuteOptions controls plan execution
type TidyExecuteOptions struct {
	Force bool // skip the confirmation prompt
}

// BuildTidyPlan scans the configured branches and the template files on
// disk and computes what a tidy run would remove. The current branch and
// its template file are excluded unless IncludeCurrentBranch is set.
func BuildTidyPlan(ctx context.Context, rt *runtime.Context, opts TidyPlanOptions) (*TidyPlan, error) {
	configured, err := rt.Templates.ListConfigured(ctx)
	if err != nil {
		return nil, err
	}

	// Detached HEAD leaves no current branch to protect.
	currentBranch, err := rt.CurrentBranch()
	if err != nil {
		currentBranch = ""
	}

	plan := &TidyPlan{}
	excludeTemplate := ""
	for _, branch := range configured {
		if branch.Branch == currentBranch {
			excludeTemplate = branch.TemplateFile
			if !opts.IncludeCurrentBranch {
				continue
			}
		}
		plan.TargetBranches = append(plan.TargetBranches, branch)
	}
	if opts.OrphansOnly {
		plan.TargetBranches = nil
	}

	orphans, err := rt.Templates.FindOrphans(ctx, excludeTemplate)
	if err != nil {
		return nil, err
	}
	plan.OrphanTemplates = orphans

	return plan, nil
}

// ExecuteTidyPlan removes the template configuration of every target
// branch and deletes every orphaned template file. An empty plan
// short-circuits without prompting.
func ExecuteTidyPlan(ctx context.Context, rt *runtime.Context, plan *TidyPlan, opts TidyExecuteOptions) error {
	if plan.Empty() {
		rt.Splog.Info("Nothing to tidy")
		return nil
	}

	describeTidyPlan(rt, plan)

	if !opts.Force {
		if !utils.IsInteractive() {
			return fmt.Errorf("confirmation required; re-run with --force")
		}
		confirmed, err := PromptConfirm("Proceed?")
		if err != nil {
			return err
		}
		if !confirmed {
			rt.Splog.Info("Aborted")
			return nil
		}
	}

	for _, branch := range plan.TargetBranches {
		outcome, err := rt.Templates.Unset(ctx, branch.Branch, false)
		if err != nil {
			return err
		}
		reportUnset(rt, branch.Branch, outcome, false)
	}

	for _, orphan := range plan.OrphanTemplates {
		if err := rt.Templates.RemoveTemplateFile(orphan); err != nil {
			return fmt.Errorf("failed to remove orphan template %s: %w", orphan, err)
		}
		rt.Splog.Info("Removed orphan template %s", tui.ColorPath(orphan))
	}

	return nil
}

func describeTidyPlan(rt *runtime.Context, plan *TidyPlan) {
	if len(plan.TargetBranches) > 0 {
		rt.Splog.Info("Template configuration will be removed for %d branch(es):", len(plan.TargetBranches))
		for _, branch := range plan.TargetBranches {
			rt.Splog.Info("  %s", tui.ColorBranchName(branch.Branch, false))
		}
	}
	if len(plan.OrphanTemplates) > 0 {
		rt.Splog.Info("Orphaned template file(s) to delete:")
		for _, orphan := range plan.OrphanTemplates {
			rt.Splog.Info("  %s", tui.ColorPath(orphan))
		}
	}
}
