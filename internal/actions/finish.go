package actions

import (
	"context"
	"fmt"

	"braid.dev/braid/internal/git"
	"braid.dev/braid/internal/runtime"
	"braid.dev/braid/internal/tui"
	"braid.dev/braid/internal/utils"
)

// FinishOptions contains options for finishing a branch
type FinishOptions struct {
	Branch string // defaults to the current branch
	Force  bool   // skip the confirmation prompt
}

// Finish retires a branch: removes its commit template, returns to the
// base branch (pulling when it has an upstream) and safe-deletes the
// branch. A failed delete is a warning, not a fatal error.
func Finish(ctx context.Context, rt *runtime.Context, opts FinishOptions) error {
	branch := opts.Branch
	if branch == "" {
		current, err := rt.CurrentBranch()
		if err != nil {
			return err
		}
		branch = current
	} else {
		exists, err := git.BranchExists(ctx, rt.Runner, branch)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("branch %s does not exist", branch)
		}
	}

	base := rt.Workflow.BaseBranch()
	if branch == base {
		return fmt.Errorf("refusing to finish the base branch %s", branch)
	}

	if !opts.Force {
		if !utils.IsInteractive() {
			return fmt.Errorf("confirmation required; re-run with --force")
		}
		confirmed, err := PromptConfirm(fmt.Sprintf("Finish branch %s? This deletes it locally.", tui.ColorBranchName(branch, false)))
		if err != nil {
			return err
		}
		if !confirmed {
			rt.Splog.Info("Aborted")
			return nil
		}
	}

	// Template cleanup needs per-branch config support; on older git the
	// branch never had a template, so the step is skipped rather than fatal.
	version, err := git.InstalledVersion(ctx, rt.Runner)
	if err != nil {
		return err
	}
	if version.SupportsOnBranchInclude() {
		outcome, err := rt.Templates.Unset(ctx, branch, false)
		if err != nil {
			return err
		}
		reportUnset(rt, branch, outcome, false)
	} else {
		rt.Splog.Debug("git %s does not support per-branch config, skipping template cleanup", version)
	}

	if err := git.CheckoutBranch(ctx, rt.Runner, base); err != nil {
		return err
	}
	if err := pullIfUpstream(ctx, rt, base); err != nil {
		return err
	}

	if err := git.DeleteBranchSafe(ctx, rt.Runner, branch); err != nil {
		rt.Splog.Warn("Could not delete %s: %v", tui.ColorBranchName(branch, false), err)
		rt.Splog.Warn("Delete it manually with: git branch -d %s", branch)
		return nil
	}
	rt.Splog.Info("Deleted branch %s", tui.ColorBranchName(branch, false))
	return nil
}
