package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"braid.dev/braid/testhelpers"
)

func TestBranchExists(t *testing.T) {
	scene := testhelpers.NewScene(t, nil)
	runner := NewCommandRunner(scene.Dir)
	ctx := context.Background()

	exists, err := BranchExists(ctx, runner, "main")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = BranchExists(ctx, runner, "never-created")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, scene.Repo.CreateBranch("feature-20240101-cd"))
	exists, err = BranchExists(ctx, runner, "feature-20240101-cd")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestGetCurrentBranch(t *testing.T) {
	scene := testhelpers.NewScene(t, nil)

	current, err := GetCurrentBranch(scene.Dir)
	require.NoError(t, err)
	require.Equal(t, "main", current)

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature-20240101-cd"))
	current, err = GetCurrentBranch(scene.Dir)
	require.NoError(t, err)
	require.Equal(t, "feature-20240101-cd", current)
}

func TestGetUpstreamEmptyWithoutRemote(t *testing.T) {
	scene := testhelpers.NewScene(t, nil)
	runner := NewCommandRunner(scene.Dir)

	upstream, err := GetUpstream(context.Background(), runner, "main")
	require.NoError(t, err)
	require.Empty(t, upstream)
}

func TestGetUpstreamAfterPush(t *testing.T) {
	scene := testhelpers.NewScene(t, nil)
	runner := NewCommandRunner(scene.Dir)

	_, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "main"))

	upstream, err := GetUpstream(context.Background(), runner, "main")
	require.NoError(t, err)
	require.Equal(t, "origin/main", upstream)
}
