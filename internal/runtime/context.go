// Package runtime provides a context type that holds the config store,
// template manager and logger for use throughout the application.
// This avoids passing multiple parameters.
package runtime

import (
	"context"
	"fmt"

	"braid.dev/braid/internal/config"
	"braid.dev/braid/internal/git"
	"braid.dev/braid/internal/template"
	"braid.dev/braid/internal/tui"
)

// Context provides access to the repository state and output for commands
type Context struct {
	Splog     *tui.Splog
	Runner    *git.CommandRunner
	Store     *config.Store
	Workflow  *config.Workflow
	Templates *template.Manager
	RepoRoot  string
	GitDir    string
}

// GetContext builds the runtime context for the repository containing the
// working directory: repo detection, config store and workflow load.
func GetContext(ctx context.Context) (*Context, error) {
	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, err
	}
	return GetContextForRepo(ctx, repoRoot)
}

// GetContextForRepo builds the runtime context for a specific repository root.
func GetContextForRepo(ctx context.Context, repoRoot string) (*Context, error) {
	runner := git.NewCommandRunner(repoRoot)

	gitDir, err := git.GetGitDir(ctx, runner)
	if err != nil {
		return nil, err
	}

	store := config.NewStore(runner)
	workflow, err := config.LoadWorkflow(ctx, store, repoRoot, gitDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow config: %w", err)
	}

	return &Context{
		Splog:     tui.NewSplog(),
		Runner:    runner,
		Store:     store,
		Workflow:  workflow,
		Templates: template.NewManager(store, workflow),
		RepoRoot:  repoRoot,
		GitDir:    gitDir,
	}, nil
}

// CurrentBranch returns the branch HEAD is on.
func (c *Context) CurrentBranch() (string, error) {
	return git.GetCurrentBranch(c.RepoRoot)
}
