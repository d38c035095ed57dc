package template

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"braid.dev/braid/internal/config"
	braiderrors "braid.dev/braid/internal/errors"
	"braid.dev/braid/internal/git"
	"braid.dev/braid/testhelpers"
)

type fixture struct {
	manager  *Manager
	store    *config.Store
	workflow *config.Workflow
	scene    *testhelpers.Scene
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	scene := testhelpers.NewScene(t, nil)
	runner := git.NewCommandRunner(scene.Dir)
	store := config.NewStore(runner)

	gitDir, err := git.GetGitDir(context.Background(), runner)
	require.NoError(t, err)

	workflow, err := config.LoadWorkflow(context.Background(), store, scene.Dir, gitDir)
	require.NoError(t, err)

	return &fixture{
		manager:  NewManager(store, workflow),
		store:    store,
		workflow: workflow,
		scene:    scene,
	}
}

func (f *fixture) templatePath(name string) string {
	return filepath.Join(f.scene.Dir, name)
}

func (f *fixture) branchConfigPath(branch string) string {
	return filepath.Join(f.workflow.GitDir(), BranchConfigName(branch))
}

func TestFlattenBranchName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "featurelogin", FlattenBranchName("feature/login"))
	require.Equal(t, "plain", FlattenBranchName("plain"))
	require.Equal(t, "abc", FlattenBranchName("a/b/c"))
}

func TestTemplateFileName(t *testing.T) {
	t.Parallel()

	require.Equal(t, ".gitmessage_local_HT-1_mybranch", TemplateFileName("HT-1", "my/branch"))
}

func TestConfigureCreatesAllThreeArtifacts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	templatePath, err := f.manager.Configure(ctx, "acme-fix-20240101-cd", "ht-12345")
	require.NoError(t, err)

	// Template file exists with the rendered format
	content, err := os.ReadFile(templatePath)
	require.NoError(t, err)
	require.Equal(t, "[HT-12345] ", string(content))

	// Branch config carries commit.template
	value, err := f.store.Get(ctx, f.branchConfigPath("acme-fix-20240101-cd"), "commit.template")
	require.NoError(t, err)
	require.Equal(t, ".gitmessage_local_HT-12345_acme-fix-20240101-cd", value)

	// Workflow config carries the include directive
	configured, err := f.manager.ListConfigured(ctx)
	require.NoError(t, err)
	require.Len(t, configured, 1)
	require.Equal(t, "acme-fix-20240101-cd", configured[0].Branch)
	require.Equal(t, "config_acme-fix-20240101-cd", configured[0].ConfigFile)
	require.Equal(t, ".gitmessage_local_HT-12345_acme-fix-20240101-cd", configured[0].TemplateFile)

	// Configure initializes the workflow on first use
	require.True(t, f.workflow.Initialized())

	state, err := f.manager.State(ctx, "acme-fix-20240101-cd")
	require.NoError(t, err)
	require.Equal(t, StateConfigured, state)
}

func TestConfigureWithoutCapitalization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Set(ctx, f.workflow.Path(), "workflow.ticketformatcapitalize", "false"))
	reloaded, err := config.LoadWorkflow(ctx, f.store, f.scene.Dir, f.workflow.GitDir())
	require.NoError(t, err)
	manager := NewManager(f.store, reloaded)

	templatePath, err := manager.Configure(ctx, "branch", "ht-12345")
	require.NoError(t, err)

	content, err := os.ReadFile(templatePath)
	require.NoError(t, err)
	require.Equal(t, "[ht-12345] ", string(content))
	require.Equal(t, ".gitmessage_local_ht-12345_branch", filepath.Base(templatePath))
}

func TestConfigureRejectsInvalidTicket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, ticket := range []string{"12345", "HT12345", "HT-", "-123", ""} {
		_, err := f.manager.Configure(ctx, "branch", ticket)
		require.Error(t, err, "ticket %q should be rejected", ticket)
		require.ErrorIs(t, err, braiderrors.ErrInvalidTicketFormat)
	}

	// No partial state is left behind
	configured, err := f.manager.ListConfigured(ctx)
	require.NoError(t, err)
	require.Empty(t, configured)
}

func TestConfigureFlattensBranchNameForFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	templatePath, err := f.manager.Configure(ctx, "feature/login", "ab-1")
	require.NoError(t, err)
	require.Equal(t, ".gitmessage_local_AB-1_featurelogin", filepath.Base(templatePath))

	// The directive still records the real branch name
	configured, err := f.manager.ListConfigured(ctx)
	require.NoError(t, err)
	require.Len(t, configured, 1)
	require.Equal(t, "feature/login", configured[0].Branch)
	require.Equal(t, "config_featurelogin", configured[0].ConfigFile)
}

func TestConfigureOverwritesExistingDirective(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.manager.Configure(ctx, "branch", "ht-1")
	require.NoError(t, err)
	_, err = f.manager.Configure(ctx, "branch", "ht-2")
	require.NoError(t, err)

	configured, err := f.manager.ListConfigured(ctx)
	require.NoError(t, err)
	require.Len(t, configured, 1)
	require.Equal(t, ".gitmessage_local_HT-2_branch", configured[0].TemplateFile)
}

func TestUnsetRemovesAllThreeArtifacts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	templatePath, err := f.manager.Configure(ctx, "branch", "ht-1")
	require.NoError(t, err)

	outcome, err := f.manager.Unset(ctx, "branch", false)
	require.NoError(t, err)
	require.Equal(t, UnsetRemoved, outcome)

	_, err = os.Stat(templatePath)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(f.branchConfigPath("branch"))
	require.True(t, os.IsNotExist(err))

	configured, err := f.manager.ListConfigured(ctx)
	require.NoError(t, err)
	require.Empty(t, configured)

	state, err := f.manager.State(ctx, "branch")
	require.NoError(t, err)
	require.Equal(t, StateUnconfigured, state)
}

func TestUnsetKeepFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	templatePath, err := f.manager.Configure(ctx, "branch", "ht-1")
	require.NoError(t, err)

	outcome, err := f.manager.Unset(ctx, "branch", true)
	require.NoError(t, err)
	require.Equal(t, UnsetRemoved, outcome)

	// Template file survives, config artifacts are gone
	_, err = os.Stat(templatePath)
	require.NoError(t, err)
	_, err = os.Stat(f.branchConfigPath("branch"))
	require.True(t, os.IsNotExist(err))
}

func TestUnsetUnconfiguredBranchIsNotAnError(t *testing.T) {
	f := newFixture(t)

	outcome, err := f.manager.Unset(context.Background(), "never-configured", false)
	require.NoError(t, err)
	require.Equal(t, UnsetNothingConfigured, outcome)
}

func TestUnsetToleratesMissingTemplateFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	templatePath, err := f.manager.Configure(ctx, "branch", "ht-1")
	require.NoError(t, err)
	require.NoError(t, os.Remove(templatePath))

	outcome, err := f.manager.Unset(ctx, "branch", false)
	require.NoError(t, err)
	require.Equal(t, UnsetRemoved, outcome)
}

func TestUnsetRepairsDirectiveWithoutTemplateValue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	templatePath, err := f.manager.Configure(ctx, "branch", "ht-1")
	require.NoError(t, err)

	// Wipe the commit.template key out-of-band, leaving a dangling directive
	require.NoError(t, f.store.Unset(ctx, f.branchConfigPath("branch"), "commit.template"))

	outcome, err := f.manager.Unset(ctx, "branch", false)
	require.NoError(t, err)
	require.Equal(t, UnsetDirectiveRepaired, outcome)

	// Directive and branch config are gone, the template file is untouched
	configured, err := f.manager.ListConfigured(ctx)
	require.NoError(t, err)
	require.Empty(t, configured)
	_, err = os.Stat(f.branchConfigPath("branch"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(templatePath)
	require.NoError(t, err)
}

func TestConfigureUnsetConfigureRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.manager.Configure(ctx, "branch", "ht-1")
	require.NoError(t, err)
	firstConfigured, err := f.manager.ListConfigured(ctx)
	require.NoError(t, err)
	firstContent, err := os.ReadFile(first)
	require.NoError(t, err)

	_, err = f.manager.Unset(ctx, "branch", false)
	require.NoError(t, err)

	second, err := f.manager.Configure(ctx, "branch", "ht-1")
	require.NoError(t, err)
	secondConfigured, err := f.manager.ListConfigured(ctx)
	require.NoError(t, err)
	secondContent, err := os.ReadFile(second)
	require.NoError(t, err)

	// Identical three-artifact state as a single configure
	require.Equal(t, first, second)
	require.Equal(t, firstConfigured, secondConfigured)
	require.Equal(t, firstContent, secondContent)
}

func TestListConfiguredOrdersByFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.manager.Configure(ctx, "zeta", "aa-1")
	require.NoError(t, err)
	_, err = f.manager.Configure(ctx, "alpha", "bb-2")
	require.NoError(t, err)

	configured, err := f.manager.ListConfigured(ctx)
	require.NoError(t, err)
	require.Len(t, configured, 2)
	require.Equal(t, "zeta", configured[0].Branch)
	require.Equal(t, "alpha", configured[1].Branch)
}

func TestFindOrphans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	templateA, err := f.manager.Configure(ctx, "branch-a", "ht-1")
	require.NoError(t, err)
	templateB, err := f.manager.Configure(ctx, "branch-b", "ht-2")
	require.NoError(t, err)

	// Nothing is orphaned while both branch configs are intact
	orphans, err := f.manager.FindOrphans(ctx, "")
	require.NoError(t, err)
	require.Empty(t, orphans)

	// Remove branch-b's config file out-of-band; its template loses its
	// branch association
	require.NoError(t, os.Remove(f.branchConfigPath("branch-b")))

	orphans, err = f.manager.FindOrphans(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Base(templateB)}, orphans)
	require.NotContains(t, orphans, filepath.Base(templateA))
}

func TestFindOrphansExcludesNamedFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A template file with no configuration at all
	stray := f.templatePath(".gitmessage_local_XX-9_stray")
	require.NoError(t, os.WriteFile(stray, []byte("[XX-9] "), 0o644))

	orphans, err := f.manager.FindOrphans(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{".gitmessage_local_XX-9_stray"}, orphans)

	orphans, err = f.manager.FindOrphans(ctx, ".gitmessage_local_XX-9_stray")
	require.NoError(t, err)
	require.Empty(t, orphans)
}

func TestRemoveTemplateFileIsIdempotent(t *testing.T) {
	f := newFixture(t)

	stray := f.templatePath(".gitmessage_local_XX-9_stray")
	require.NoError(t, os.WriteFile(stray, []byte("[XX-9] "), 0o644))

	require.NoError(t, f.manager.RemoveTemplateFile(".gitmessage_local_XX-9_stray"))
	require.NoError(t, f.manager.RemoveTemplateFile(".gitmessage_local_XX-9_stray"))
}

func TestValidateTicket(t *testing.T) {
	f := newFixture(t)

	ticket, err := f.manager.ValidateTicket("ht-12345")
	require.NoError(t, err)
	require.Equal(t, "HT-12345", ticket)

	_, err = f.manager.ValidateTicket("nope")
	require.ErrorIs(t, err, braiderrors.ErrInvalidTicketFormat)
}
