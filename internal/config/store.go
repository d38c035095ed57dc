// Package config provides typed access to braid's git-config backed
// configuration: a file-scoped key/value store plus the workflow-level
// settings kept in .git/config_workflow.
package config

import (
	"context"
	"errors"
	"os"
	"strings"

	braiderrors "braid.dev/braid/internal/errors"
	"braid.dev/braid/internal/git"
)

// git config exit codes: 1 means the requested key (or regexp) matched
// nothing, 5 means unset of a key that was never set. Neither is an error
// for our contract.
const (
	exitKeyMissing   = 1
	exitUnsetMissing = 5
)

// Entry is a single key/value pair returned by a regexp scan.
type Entry struct {
	Key   string
	Value string
}

// Store reads and writes git config keys scoped to explicit file paths,
// or to the local repository scope with include resolution.
type Store struct {
	runner *git.CommandRunner
}

// NewStore creates a Store whose git invocations run inside repoRoot.
func NewStore(runner *git.CommandRunner) *Store {
	return &Store{runner: runner}
}

// Get returns the value for key in the given config file, or empty when
// the key or the file does not exist. Values are returned exactly as
// stored; git quotes trailing whitespace on write and template formats
// depend on it surviving the read.
func (s *Store) Get(ctx context.Context, file, key string) (string, error) {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return "", nil
	}
	value, err := s.runner.RunOutput(ctx, "config", "-f", file, "--get", key)
	if err != nil {
		if isExitCode(err, exitKeyMissing) {
			return "", nil
		}
		return "", braiderrors.NewConfigError(file, "get", err)
	}
	return value, nil
}

// GetDefault returns the value for key, or def when the key is unset or empty.
func (s *Store) GetDefault(ctx context.Context, file, key, def string) (string, error) {
	value, err := s.Get(ctx, file, key)
	if err != nil {
		return "", err
	}
	if value == "" {
		return def, nil
	}
	return value, nil
}

// Set writes key=value into the given config file, creating it if needed.
func (s *Store) Set(ctx context.Context, file, key, value string) error {
	if _, err := s.runner.Run(ctx, "config", "-f", file, key, value); err != nil {
		return braiderrors.NewConfigError(file, "set", err)
	}
	return nil
}

// Unset removes key from the given config file. Removing a key that does
// not exist is not an error.
func (s *Store) Unset(ctx context.Context, file, key string) error {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return nil
	}
	if _, err := s.runner.Run(ctx, "config", "-f", file, "--unset", key); err != nil {
		if isExitCode(err, exitUnsetMissing) || isExitCode(err, exitKeyMissing) {
			return nil
		}
		return braiderrors.NewConfigError(file, "unset", err)
	}
	return nil
}

// GetRegexp returns all (key, value) pairs in the given config file whose
// key matches pattern, in file order. No matches yields an empty slice.
func (s *Store) GetRegexp(ctx context.Context, file, pattern string) ([]Entry, error) {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return nil, nil
	}
	output, err := s.runner.RunOutput(ctx, "config", "-f", file, "--get-regexp", pattern)
	if err != nil {
		if isExitCode(err, exitKeyMissing) {
			return nil, nil
		}
		return nil, braiderrors.NewConfigError(file, "get-regexp", err)
	}
	if output == "" {
		return nil, nil
	}

	lines := strings.Split(output, "\n")
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		key, value, _ := strings.Cut(line, " ")
		entries = append(entries, Entry{Key: key, Value: value})
	}
	return entries, nil
}

// GetLocal returns the merged view of key from the local repository scope,
// resolving include directives.
func (s *Store) GetLocal(ctx context.Context, key string) (string, error) {
	value, err := s.runner.RunOutput(ctx, "config", "--local", "--includes", "--get", key)
	if err != nil {
		if isExitCode(err, exitKeyMissing) {
			return "", nil
		}
		return "", braiderrors.NewConfigError("local", "get", err)
	}
	return value, nil
}

// GetAllLocal returns every value recorded for key in the local scope.
func (s *Store) GetAllLocal(ctx context.Context, key string) ([]string, error) {
	output, err := s.runner.RunOutput(ctx, "config", "--local", "--get-all", key)
	if err != nil {
		if isExitCode(err, exitKeyMissing) {
			return nil, nil
		}
		return nil, braiderrors.NewConfigError("local", "get-all", err)
	}
	if output == "" {
		return nil, nil
	}
	return strings.Split(output, "\n"), nil
}

// AddLocal appends key=value to the local repository config.
func (s *Store) AddLocal(ctx context.Context, key, value string) error {
	if _, err := s.runner.Run(ctx, "config", "--local", "--add", key, value); err != nil {
		return braiderrors.NewConfigError("local", "add", err)
	}
	return nil
}

func isExitCode(err error, code int) bool {
	var cmdErr *braiderrors.GitCommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode == code
	}
	return false
}
