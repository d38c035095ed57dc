package actions

import (
	"context"
	"fmt"

	"braid.dev/braid/internal/git"
	"braid.dev/braid/internal/runtime"
	"braid.dev/braid/internal/template"
	"braid.dev/braid/internal/tui"
	"braid.dev/braid/internal/utils"
)

// SetTemplateOptions contains options for configuring a commit template
type SetTemplateOptions struct {
	Branch string // defaults to the current branch
	Ticket string // prompted for when empty and interactive
}

// SetTemplate configures the commit template for a branch, initializing
// the workflow first when needed.
func SetTemplate(ctx context.Context, rt *runtime.Context, opts SetTemplateOptions) error {
	if err := git.RequireOnBranchInclude(ctx, rt.Runner); err != nil {
		return err
	}

	branch := opts.Branch
	if branch == "" {
		current, err := rt.CurrentBranch()
		if err != nil {
			return err
		}
		branch = current
	}

	ticket := opts.Ticket
	if ticket == "" {
		if !utils.IsInteractive() {
			return fmt.Errorf("a ticket number is required; pass it as an argument")
		}
		answer, err := PromptTicket(rt)
		if err != nil {
			return err
		}
		ticket = answer
	}

	wasInitialized := rt.Workflow.Initialized()
	templatePath, err := rt.Templates.Configure(ctx, branch, ticket)
	if err != nil {
		return err
	}
	if !wasInitialized {
		rt.Splog.Info("Initialized workflow config in %s", tui.ColorPath(rt.Workflow.Path()))
	}
	rt.Splog.Info("Commit template for %s written to %s",
		tui.ColorBranchName(branch, false), tui.ColorPath(templatePath))
	return nil
}

// UnsetTemplateOptions contains options for removing a commit template
type UnsetTemplateOptions struct {
	Branch   string // defaults to the current branch
	KeepFile bool
}

// UnsetTemplate removes the commit template configuration for a branch.
func UnsetTemplate(ctx context.Context, rt *runtime.Context, opts UnsetTemplateOptions) error {
	branch := opts.Branch
	if branch == "" {
		current, err := rt.CurrentBranch()
		if err != nil {
			return err
		}
		branch = current
	}

	outcome, err := rt.Templates.Unset(ctx, branch, opts.KeepFile)
	if err != nil {
		return err
	}
	reportUnset(rt, branch, outcome, opts.KeepFile)
	return nil
}

func reportUnset(rt *runtime.Context, branch string, outcome template.UnsetOutcome, keptFile bool) {
	colored := tui.ColorBranchName(branch, false)
	switch outcome {
	case template.UnsetNothingConfigured:
		rt.Splog.Info("No commit template configured for %s, nothing to do", colored)
	case template.UnsetDirectiveRepaired:
		rt.Splog.Warn("Branch config for %s had no commit.template value; removed the dangling include directive", colored)
	case template.UnsetRemoved:
		if keptFile {
			rt.Splog.Info("Removed commit template configuration for %s (template file kept)", colored)
		} else {
			rt.Splog.Info("Removed commit template for %s", colored)
		}
	}
}
