package config

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	braiderrors "braid.dev/braid/internal/errors"
)

const (
	// WorkflowFileName is the workflow config file inside .git, pulled into
	// the local config through an include.path directive.
	WorkflowFileName = "config_workflow"

	// BranchConfigPrefix prefixes the per-branch config files inside .git.
	BranchConfigPrefix = "config_"

	// TemplateFilePrefix prefixes commit template files at the repo root.
	TemplateFilePrefix = ".gitmessage_local"

	// DefaultBaseBranch is used when no base branch has been configured.
	DefaultBaseBranch = "main"

	// DefaultTemplateFormat is the commit-message prefix rendered into
	// template files; the placeholder is replaced with the ticket number.
	DefaultTemplateFormat = "[%%ticket%%] "

	// DefaultTicketPattern accepts tickets like "HT-12345".
	DefaultTicketPattern = "^[a-zA-Z]+-[0-9]+$"
)

// Workflow config keys.
const (
	keyConfigPath         = "workflow.configpath"
	keyInitials           = "workflow.initials"
	keyBaseBranch         = "workflow.basebranch"
	keyBadBranchPatterns  = "workflow.badbranchnamepatterns"
	keyEnableTemplate     = "workflow.enablecommittemplate"
	keyTemplateFormat     = "workflow.committemplateformat"
	keyTicketInputPattern = "workflow.ticketinputformatregex"
	keyTicketCapitalize   = "workflow.ticketformatcapitalize"
)

// Workflow holds the workflow-level settings for one repository, read once
// at load time from .git/config_workflow.
type Workflow struct {
	store    *Store
	repoRoot string
	gitDir   string
	path     string

	initialized           bool
	initials              string
	baseBranch            string
	badBranchNamePatterns []string
	enableCommitTemplate  bool
	templateFormat        string
	ticketPattern         string
	ticketRegex           *regexp.Regexp
	ticketCapitalize      bool
}

// LoadWorkflow reads the workflow configuration for the repository rooted
// at repoRoot. A repository without an initialized workflow loads with
// defaults and Initialized() == false.
func LoadWorkflow(ctx context.Context, store *Store, repoRoot, gitDir string) (*Workflow, error) {
	w := &Workflow{
		store:    store,
		repoRoot: repoRoot,
		gitDir:   gitDir,
		path:     filepath.Join(gitDir, WorkflowFileName),
	}

	configPath, err := store.GetLocal(ctx, keyConfigPath)
	if err != nil {
		return nil, err
	}
	w.initialized = configPath != ""

	if w.initials, err = store.Get(ctx, w.path, keyInitials); err != nil {
		return nil, err
	}
	if w.baseBranch, err = store.GetDefault(ctx, w.path, keyBaseBranch, DefaultBaseBranch); err != nil {
		return nil, err
	}

	rawPatterns, err := store.Get(ctx, w.path, keyBadBranchPatterns)
	if err != nil {
		return nil, err
	}
	w.badBranchNamePatterns = strings.Fields(rawPatterns)

	enable, err := store.GetDefault(ctx, w.path, keyEnableTemplate, "true")
	if err != nil {
		return nil, err
	}
	w.enableCommitTemplate = enable != "false"

	if w.templateFormat, err = store.GetDefault(ctx, w.path, keyTemplateFormat, DefaultTemplateFormat); err != nil {
		return nil, err
	}
	if w.ticketPattern, err = store.GetDefault(ctx, w.path, keyTicketInputPattern, DefaultTicketPattern); err != nil {
		return nil, err
	}
	w.ticketRegex, err = regexp.Compile(w.ticketPattern)
	if err != nil {
		return nil, braiderrors.NewConfigError(w.path, "parse",
			fmt.Errorf("invalid ticket format regex %q: %w", w.ticketPattern, err))
	}

	capitalize, err := store.GetDefault(ctx, w.path, keyTicketCapitalize, "true")
	if err != nil {
		return nil, err
	}
	w.ticketCapitalize = capitalize != "false"

	return w, nil
}

// Path returns the absolute path of the workflow config file.
func (w *Workflow) Path() string { return w.path }

// RepoRoot returns the repository root directory.
func (w *Workflow) RepoRoot() string { return w.repoRoot }

// GitDir returns the repository's git directory.
func (w *Workflow) GitDir() string { return w.gitDir }

// Initialized reports whether the workflow include structure has been set
// up for this repository.
func (w *Workflow) Initialized() bool { return w.initialized }

// Initials returns the configured branch-name initials, or empty.
func (w *Workflow) Initials() string { return w.initials }

// BaseBranch returns the configured base branch.
func (w *Workflow) BaseBranch() string { return w.baseBranch }

// BadBranchNamePatterns returns the forbidden branch-name substrings,
// parsed once at load time.
func (w *Workflow) BadBranchNamePatterns() []string { return w.badBranchNamePatterns }

// EnableCommitTemplate reports whether commit templates are enabled.
func (w *Workflow) EnableCommitTemplate() bool { return w.enableCommitTemplate }

// TemplateFormat returns the commit template format string.
func (w *Workflow) TemplateFormat() string { return w.templateFormat }

// TicketPattern returns the ticket validation pattern source.
func (w *Workflow) TicketPattern() string { return w.ticketPattern }

// TicketRegex returns the compiled ticket validation pattern.
func (w *Workflow) TicketRegex() *regexp.Regexp { return w.ticketRegex }

// TicketCapitalize reports whether tickets are upper-cased before rendering.
func (w *Workflow) TicketCapitalize() bool { return w.ticketCapitalize }

// SetInitials stores the branch-name initials in the workflow file.
func (w *Workflow) SetInitials(ctx context.Context, initials string) error {
	if err := w.store.Set(ctx, w.path, keyInitials, initials); err != nil {
		return err
	}
	w.initials = initials
	return nil
}

// SetBaseBranch stores the base branch in the workflow file.
func (w *Workflow) SetBaseBranch(ctx context.Context, branch string) error {
	if err := w.store.Set(ctx, w.path, keyBaseBranch, branch); err != nil {
		return err
	}
	w.baseBranch = branch
	return nil
}

// Initialize sets up the workflow include structure: the workflow config
// file and the include.path entry in the local repository config.
// Idempotent; returns true when the repository was already initialized.
func (w *Workflow) Initialize(ctx context.Context) (bool, error) {
	if w.initialized {
		return true, nil
	}

	// The file records its own name so the merged local view can resolve
	// the workflow config location through the include.
	if err := w.store.Set(ctx, w.path, keyConfigPath, WorkflowFileName); err != nil {
		return false, err
	}

	includes, err := w.store.GetAllLocal(ctx, "include.path")
	if err != nil {
		return false, err
	}
	for _, include := range includes {
		if include == WorkflowFileName {
			w.initialized = true
			return false, nil
		}
	}
	if err := w.store.AddLocal(ctx, "include.path", WorkflowFileName); err != nil {
		return false, err
	}

	w.initialized = true
	return false, nil
}
