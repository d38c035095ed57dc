package actions

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFinishRefusesBaseBranch(t *testing.T) {
	rt, _ := newActionFixture(t)

	err := Finish(context.Background(), rt, FinishOptions{Branch: "main", Force: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "base branch")
}

func TestFinishRejectsNonexistentBranch(t *testing.T) {
	rt, _ := newActionFixture(t)

	err := Finish(context.Background(), rt, FinishOptions{Branch: "never-created", Force: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not exist")
}

func TestFinishRequiresConfirmationWhenNonInteractive(t *testing.T) {
	rt, scene := newActionFixture(t)
	ctx := context.Background()

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("done-20240101-cd"))

	err := Finish(ctx, rt, FinishOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "--force")

	// The branch is untouched
	current, err := scene.Repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, "done-20240101-cd", current)
}

func TestFinishRemovesTemplateAndDeletesBranch(t *testing.T) {
	rt, scene := newActionFixture(t)
	ctx := context.Background()

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("done-20240101-cd"))
	templatePath, err := rt.Templates.Configure(ctx, "done-20240101-cd", "ht-1")
	require.NoError(t, err)

	require.NoError(t, Finish(ctx, rt, FinishOptions{Force: true}))

	current, err := scene.Repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, "main", current)

	branches, err := scene.Repo.GetLocalBranches()
	require.NoError(t, err)
	require.NotContains(t, branches, "done-20240101-cd")

	_, err = os.Stat(templatePath)
	require.True(t, os.IsNotExist(err))

	configured, err := rt.Templates.ListConfigured(ctx)
	require.NoError(t, err)
	require.Empty(t, configured)
}

func TestFinishUnmergedBranchIsWarningNotError(t *testing.T) {
	rt, scene := newActionFixture(t)
	ctx := context.Background()

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("wip-20240101-cd"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("unmerged work"))

	// Safe delete refuses the unmerged branch; finish reports and succeeds
	require.NoError(t, Finish(ctx, rt, FinishOptions{Force: true}))

	branches, err := scene.Repo.GetLocalBranches()
	require.NoError(t, err)
	require.Contains(t, branches, "wip-20240101-cd")

	current, err := scene.Repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, "main", current)
}
