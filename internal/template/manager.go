// Package template manages per-branch commit-message templates and the
// git-config include structure that binds them to branches.
//
// A configured branch owns three artifacts that are created and destroyed
// together: an includeIf.onbranch directive in the workflow config file,
// a per-branch config file inside .git carrying commit.template, and the
// template file itself at the repository root.
package template

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"braid.dev/braid/internal/config"
	braiderrors "braid.dev/braid/internal/errors"
)

// BranchState describes whether a branch currently has a commit template.
type BranchState int

const (
	// StateUnconfigured means no include directive exists for the branch.
	StateUnconfigured BranchState = iota
	// StateConfigured means an include directive exists for the branch.
	StateConfigured
)

// UnsetOutcome describes what Unset found and did.
type UnsetOutcome int

const (
	// UnsetRemoved means the directive, branch config and template were removed.
	UnsetRemoved UnsetOutcome = iota
	// UnsetNothingConfigured means the branch had no template configured.
	UnsetNothingConfigured
	// UnsetDirectiveRepaired means a directive existed but its branch config
	// carried no commit.template value; the dangling directive and config
	// file were removed and no template file was touched.
	UnsetDirectiveRepaired
)

// ConfiguredBranch is one branch with a template, as recorded in the
// workflow config file.
type ConfiguredBranch struct {
	Branch       string
	ConfigFile   string // branch config filename inside .git
	TemplateFile string // template filename at the repo root, may be empty
}

// directiveRegex parses the keys printed by a get-regexp scan of the
// workflow file. git lowercases section and variable names but preserves
// the subsection (the branch name).
var directiveRegex = regexp.MustCompile(`^includeif\.onbranch:(.+)\.path$`)

// Manager owns creation, lookup and deletion of per-branch commit
// templates and their config records.
type Manager struct {
	store    *config.Store
	workflow *config.Workflow
}

// NewManager creates a Manager over the given store and workflow.
func NewManager(store *config.Store, workflow *config.Workflow) *Manager {
	return &Manager{store: store, workflow: workflow}
}

// FlattenBranchName strips path separators from a branch name so it can
// be used in flat filenames inside .git.
func FlattenBranchName(branch string) string {
	return strings.ReplaceAll(branch, "/", "")
}

// BranchConfigName returns the per-branch config filename for a branch.
func BranchConfigName(branch string) string {
	return config.BranchConfigPrefix + FlattenBranchName(branch)
}

// TemplateFileName returns the template filename for a ticket/branch pair.
// Both parts are included so names never collide across branches or tickets.
func TemplateFileName(ticket, branch string) string {
	return fmt.Sprintf("%s_%s_%s", config.TemplateFilePrefix, ticket, FlattenBranchName(branch))
}

func includeKey(branch string) string {
	return fmt.Sprintf("includeIf.onbranch:%s.path", branch)
}

// State returns the template state of a branch from a single directive read.
func (m *Manager) State(ctx context.Context, branch string) (BranchState, error) {
	value, err := m.store.Get(ctx, m.workflow.Path(), includeKey(branch))
	if err != nil {
		return StateUnconfigured, err
	}
	if value == "" {
		return StateUnconfigured, nil
	}
	return StateConfigured, nil
}

// ValidateTicket checks a ticket number against the configured format and
// returns it normalized (upper-cased when capitalization is enabled).
func (m *Manager) ValidateTicket(ticket string) (string, error) {
	if !m.workflow.TicketRegex().MatchString(ticket) {
		return "", braiderrors.NewInvalidTicketFormatError(ticket, m.workflow.TicketPattern())
	}
	if m.workflow.TicketCapitalize() {
		ticket = strings.ToUpper(ticket)
	}
	return ticket, nil
}

// Configure creates the commit template for a branch: the rendered
// template file, the branch config file carrying commit.template, and the
// include directive in the workflow config. Initializes the workflow
// first when needed. Returns the template file path.
func (m *Manager) Configure(ctx context.Context, branch, ticket string) (string, error) {
	ticket, err := m.ValidateTicket(ticket)
	if err != nil {
		return "", err
	}

	if _, err := m.workflow.Initialize(ctx); err != nil {
		return "", err
	}

	body := strings.ReplaceAll(m.workflow.TemplateFormat(), "%%ticket%%", ticket)
	templateName := TemplateFileName(ticket, branch)
	templatePath := filepath.Join(m.workflow.RepoRoot(), templateName)
	if err := os.WriteFile(templatePath, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("failed to write template file: %w", err)
	}

	configName := BranchConfigName(branch)
	configPath := filepath.Join(m.workflow.GitDir(), configName)
	if err := m.store.Set(ctx, configPath, "commit.template", templateName); err != nil {
		return "", err
	}

	if err := m.store.Set(ctx, m.workflow.Path(), includeKey(branch), configName); err != nil {
		return "", err
	}

	return templatePath, nil
}

// Unset removes the template configuration for a branch: the include
// directive, the branch config file and, unless keepFile is set, the
// template file. Every deletion tolerates an already-missing target.
func (m *Manager) Unset(ctx context.Context, branch string, keepFile bool) (UnsetOutcome, error) {
	configName, err := m.store.Get(ctx, m.workflow.Path(), includeKey(branch))
	if err != nil {
		return UnsetNothingConfigured, err
	}
	if configName == "" {
		return UnsetNothingConfigured, nil
	}

	configPath := filepath.Join(m.workflow.GitDir(), configName)
	templateName, err := m.store.Get(ctx, configPath, "commit.template")
	if err != nil {
		return UnsetNothingConfigured, err
	}

	if err := m.store.Unset(ctx, m.workflow.Path(), includeKey(branch)); err != nil {
		return UnsetNothingConfigured, err
	}
	if err := removeIfPresent(configPath); err != nil {
		return UnsetNothingConfigured, err
	}

	// A directive without a commit.template value has nothing left to
	// delete; removing the dangling directive and config file is the repair.
	if templateName == "" {
		return UnsetDirectiveRepaired, nil
	}

	if !keepFile {
		if err := removeIfPresent(filepath.Join(m.workflow.RepoRoot(), templateName)); err != nil {
			return UnsetRemoved, err
		}
	}
	return UnsetRemoved, nil
}

// ListConfigured returns every branch that currently has an include
// directive, in workflow-file order, with the branch config filename and
// the template filename its commit.template points at.
func (m *Manager) ListConfigured(ctx context.Context) ([]ConfiguredBranch, error) {
	entries, err := m.store.GetRegexp(ctx, m.workflow.Path(), `^includeif\.onbranch:`)
	if err != nil {
		return nil, err
	}

	branches := make([]ConfiguredBranch, 0, len(entries))
	for _, entry := range entries {
		matches := directiveRegex.FindStringSubmatch(entry.Key)
		if matches == nil {
			continue
		}
		configured := ConfiguredBranch{
			Branch:     matches[1],
			ConfigFile: entry.Value,
		}
		configPath := filepath.Join(m.workflow.GitDir(), entry.Value)
		templateName, err := m.store.Get(ctx, configPath, "commit.template")
		if err != nil {
			return nil, err
		}
		configured.TemplateFile = templateName
		branches = append(branches, configured)
	}
	return branches, nil
}

// FindOrphans returns template filenames present at the repo root that no
// configured branch references. excludeFilename, when non-empty, is left
// out of the disk scan so an in-progress operation cannot orphan its own
// template.
func (m *Manager) FindOrphans(ctx context.Context, excludeFilename string) ([]string, error) {
	configured, err := m.ListConfigured(ctx)
	if err != nil {
		return nil, err
	}
	referenced := make(map[string]bool, len(configured))
	for _, branch := range configured {
		if branch.TemplateFile != "" {
			referenced[branch.TemplateFile] = true
		}
	}

	pattern := filepath.Join(m.workflow.RepoRoot(), config.TemplateFilePrefix+"*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for template files: %w", err)
	}

	var orphans []string
	for _, match := range matches {
		name := filepath.Base(match)
		if name == excludeFilename {
			continue
		}
		if !referenced[name] {
			orphans = append(orphans, name)
		}
	}
	return orphans, nil
}

// RemoveTemplateFile deletes a template file at the repo root by name.
// Missing files are not an error.
func (m *Manager) RemoveTemplateFile(name string) error {
	return removeIfPresent(filepath.Join(m.workflow.RepoRoot(), name))
}

func removeIfPresent(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
