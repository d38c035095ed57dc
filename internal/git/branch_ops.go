package git

import (
	"context"
	"fmt"
)

// CreateAndCheckoutBranch creates and checks out a new branch
func CreateAndCheckoutBranch(ctx context.Context, runner *CommandRunner, branchName string) error {
	_, err := runner.Run(ctx, "checkout", "-b", branchName)
	if err != nil {
		return fmt.Errorf("failed to create and checkout branch %s: %w", branchName, err)
	}
	return nil
}

// CheckoutBranch checks out an existing branch
func CheckoutBranch(ctx context.Context, runner *CommandRunner, branchName string) error {
	_, err := runner.Run(ctx, "checkout", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteBranchSafe deletes a branch with `git branch -d`, which refuses
// to delete branches that are not fully merged.
func DeleteBranchSafe(ctx context.Context, runner *CommandRunner, branchName string) error {
	_, err := runner.Run(ctx, "branch", "-d", branchName)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

// Pull runs `git pull` on the currently checked-out branch.
func Pull(ctx context.Context, runner *CommandRunner) error {
	_, err := runner.Run(ctx, "pull")
	if err != nil {
		return fmt.Errorf("failed to pull: %w", err)
	}
	return nil
}
