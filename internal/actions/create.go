package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"braid.dev/braid/internal/branchname"
	"braid.dev/braid/internal/git"
	"braid.dev/braid/internal/runtime"
	"braid.dev/braid/internal/tui"
	"braid.dev/braid/internal/utils"
)

// CreateOptions contains options for creating a branch
type CreateOptions struct {
	Name             string // full branch name; when set, name building is skipped
	Client           string
	NoClient         bool
	Description      string
	Initials         string
	BaseBranch       string
	UseCurrentAsBase bool
	Timestamp        string
	Ticket           string
	NoTicket         bool
	SkipPull         bool
	SkipNameCheck    bool
}

// Create builds a branch name under the naming convention, creates the
// branch off the base branch and, when a ticket is available and commit
// templates are enabled, configures the branch's commit template.
func Create(ctx context.Context, rt *runtime.Context, opts CreateOptions) error {
	name := opts.Name
	if name == "" {
		built, err := buildBranchName(rt, &opts)
		if err != nil {
			return err
		}
		name = built
	}

	if !opts.SkipNameCheck {
		if err := branchname.CheckForbiddenPatterns(name, rt.Workflow.BadBranchNamePatterns()); err != nil {
			return err
		}
	}

	exists, err := git.BranchExists(ctx, rt.Runner, name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("branch %s already exists", name)
	}

	base := opts.BaseBranch
	if base == "" {
		base = rt.Workflow.BaseBranch()
	}
	if opts.UseCurrentAsBase {
		current, err := rt.CurrentBranch()
		if err != nil {
			return err
		}
		base = current
	} else {
		if err := git.CheckoutBranch(ctx, rt.Runner, base); err != nil {
			return err
		}
	}

	if !opts.SkipPull {
		if err := pullIfUpstream(ctx, rt, base); err != nil {
			return err
		}
	}

	if err := git.CreateAndCheckoutBranch(ctx, rt.Runner, name); err != nil {
		return err
	}
	rt.Splog.Info("Created branch %s off %s", tui.ColorBranchName(name, true), tui.ColorBranchName(base, false))

	if opts.NoTicket || !rt.Workflow.EnableCommitTemplate() {
		return nil
	}

	ticket := opts.Ticket
	if ticket == "" && utils.IsInteractive() {
		answer, err := PromptTicket(rt)
		if err != nil {
			if errors.Is(err, ErrInteractiveDisabled) {
				return nil
			}
			return err
		}
		ticket = answer
	}
	if ticket == "" {
		return nil
	}

	if err := git.RequireOnBranchInclude(ctx, rt.Runner); err != nil {
		return err
	}
	templatePath, err := rt.Templates.Configure(ctx, name, ticket)
	if err != nil {
		return err
	}
	rt.Splog.Info("Commit template written to %s", tui.ColorPath(templatePath))
	return nil
}

// buildBranchName assembles the branch name from its segments, prompting
// for missing pieces when interactive.
func buildBranchName(rt *runtime.Context, opts *CreateOptions) (string, error) {
	description := opts.Description
	if description == "" {
		if !utils.IsInteractive() {
			return "", fmt.Errorf("a branch description is required; pass --description")
		}
		answer, err := PromptTextInput("Branch description", "")
		if err != nil {
			return "", err
		}
		description = answer
	}
	if description == "" {
		return "", fmt.Errorf("a branch description is required")
	}

	client := opts.Client
	if client == "" && !opts.NoClient && utils.IsInteractive() {
		answer, err := PromptTextInput("Client (leave empty for none)", "")
		if err != nil {
			return "", err
		}
		client = answer
	}

	initials := opts.Initials
	if initials == "" {
		initials = rt.Workflow.Initials()
	}
	if initials == "" {
		if !utils.IsInteractive() {
			return "", fmt.Errorf("initials are required; pass --initials or configure workflow.initials")
		}
		answer, err := PromptTextInput("Your initials", "")
		if err != nil {
			return "", err
		}
		initials = answer
	}
	if initials == "" {
		return "", fmt.Errorf("initials are required")
	}

	timestamp := opts.Timestamp
	if timestamp == "" {
		timestamp = time.Now().Format("20060102")
	}

	return branchname.Build(
		branchname.Sanitize(client),
		branchname.Sanitize(description),
		timestamp,
		branchname.Sanitize(initials),
	), nil
}

// pullIfUpstream pulls the currently checked-out branch when it has a
// remote upstream configured.
func pullIfUpstream(ctx context.Context, rt *runtime.Context, branch string) error {
	upstream, err := git.GetUpstream(ctx, rt.Runner, branch)
	if err != nil {
		return err
	}
	if upstream == "" {
		rt.Splog.Debug("Branch %s has no upstream, skipping pull", branch)
		return nil
	}
	return git.Pull(ctx, rt.Runner)
}
