package git

import (
	"context"
	"fmt"
	"os"

	gogit "github.com/go-git/go-git/v5"

	braiderrors "braid.dev/braid/internal/errors"
)

// GetRepoRoot returns the root directory of the Git repository containing
// the current working directory.
func GetRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return GetRepoRootFrom(wd)
}

// GetRepoRootFrom returns the root directory of the Git repository containing dir.
func GetRepoRootFrom(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", braiderrors.ErrNotAGitRepository, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// GetGitDir returns the absolute path of the repository's git directory.
func GetGitDir(ctx context.Context, runner *CommandRunner) (string, error) {
	gitDir, err := runner.Run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("failed to resolve git directory: %w", err)
	}
	return gitDir, nil
}
