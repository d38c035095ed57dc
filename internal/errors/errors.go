// Package errors provides sentinel errors and custom error types for the braid application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotAGitRepository indicates the working directory is not inside a git repository
	ErrNotAGitRepository = errors.New("not a git repository")

	// ErrGitVersionUnsupported indicates the installed git is too old for
	// branch-scoped config includes
	ErrGitVersionUnsupported = errors.New("git version unsupported")

	// ErrInvalidTicketFormat indicates a ticket number failed format validation
	ErrInvalidTicketFormat = errors.New("invalid ticket format")

	// ErrNamingPolicyViolation indicates a branch name matched a forbidden pattern
	ErrNamingPolicyViolation = errors.New("branch name violates naming policy")
)

// NamingPolicyViolationError reports the forbidden pattern a branch name matched
type NamingPolicyViolationError struct {
	BranchName string
	Pattern    string
}

func (e *NamingPolicyViolationError) Error() string {
	return fmt.Sprintf("branch name %q matches forbidden pattern %q", e.BranchName, e.Pattern)
}

// Is returns true if the target error is ErrNamingPolicyViolation
func (e *NamingPolicyViolationError) Is(target error) bool {
	return target == ErrNamingPolicyViolation
}

// NewNamingPolicyViolationError creates a new NamingPolicyViolationError
func NewNamingPolicyViolationError(branchName, pattern string) *NamingPolicyViolationError {
	return &NamingPolicyViolationError{BranchName: branchName, Pattern: pattern}
}

// InvalidTicketFormatError reports a ticket that failed the configured format check
type InvalidTicketFormatError struct {
	Ticket  string
	Pattern string
}

func (e *InvalidTicketFormatError) Error() string {
	return fmt.Sprintf("ticket %q does not match the expected format %s", e.Ticket, e.Pattern)
}

// Is returns true if the target error is ErrInvalidTicketFormat
func (e *InvalidTicketFormatError) Is(target error) bool {
	return target == ErrInvalidTicketFormat
}

// NewInvalidTicketFormatError creates a new InvalidTicketFormatError
func NewInvalidTicketFormatError(ticket, pattern string) *InvalidTicketFormatError {
	return &InvalidTicketFormatError{Ticket: ticket, Pattern: pattern}
}

// ConfigError represents an I/O failure reading or writing a config file
type ConfigError struct {
	Path string
	Op   string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(path, op string, err error) *ConfigError {
	return &ConfigError{Path: path, Op: op, Err: err}
}

// GitVersionError reports an installed git version below the required minimum
type GitVersionError struct {
	Installed string
	Required  string
}

func (e *GitVersionError) Error() string {
	return fmt.Sprintf("git %s or newer is required for per-branch config includes, found %s", e.Required, e.Installed)
}

// Is returns true if the target error is ErrGitVersionUnsupported
func (e *GitVersionError) Is(target error) bool {
	return target == ErrGitVersionUnsupported
}

// NewGitVersionError creates a new GitVersionError
func NewGitVersionError(installed, required string) *GitVersionError {
	return &GitVersionError{Installed: installed, Required: required}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, exitCode int, err error) *GitCommandError {
	return &GitCommandError{
		Command:  command,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}
