package git

import (
	"context"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// GetCurrentBranch returns the short name of the branch HEAD is on.
func GetCurrentBranch(repoRoot string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(repoRoot, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch")
	}
	return head.Name().Short(), nil
}

// BranchExists reports whether a local branch with the given name exists.
func BranchExists(ctx context.Context, runner *CommandRunner, branchName string) (bool, error) {
	names, err := runner.RunLines(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if strings.TrimSpace(name) == branchName {
			return true, nil
		}
	}
	return false, nil
}

// GetUpstream returns the upstream tracking ref of a branch (e.g. "origin/main"),
// or empty when the branch has no upstream.
func GetUpstream(ctx context.Context, runner *CommandRunner, branchName string) (string, error) {
	output, err := runner.Run(ctx, "for-each-ref", "--format=%(upstream:short)", "refs/heads/"+branchName)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}
