package git

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	braiderrors "braid.dev/braid/internal/errors"
)

// Branch-scoped config includes (includeIf.onbranch) shipped in git 2.23.
const (
	minSupportedMajor = 2
	minSupportedMinor = 23
)

// MinSupportedVersion is the oldest git release braid can manage templates with.
var MinSupportedVersion = Version{Major: minSupportedMajor, Minor: minSupportedMinor}

// Version is a parsed git version number
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast reports whether v is the same as or newer than other.
func (v Version) AtLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor > other.Minor
	}
	return v.Patch >= other.Patch
}

// SupportsOnBranchInclude reports whether this git can resolve
// includeIf.onbranch config directives.
func (v Version) SupportsOnBranchInclude() bool {
	return v.AtLeast(MinSupportedVersion)
}

var versionRegex = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion parses the output of `git --version`, e.g. "git version 2.39.2".
func ParseVersion(output string) (Version, error) {
	matches := versionRegex.FindStringSubmatch(output)
	if matches == nil {
		return Version{}, fmt.Errorf("unrecognized git version output: %q", output)
	}

	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])
	patch := 0
	if matches[3] != "" {
		patch, _ = strconv.Atoi(matches[3])
	}
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// InstalledVersion returns the version of the git executable on PATH.
func InstalledVersion(ctx context.Context, runner *CommandRunner) (Version, error) {
	output, err := runner.Run(ctx, "--version")
	if err != nil {
		return Version{}, fmt.Errorf("failed to run git --version: %w", err)
	}
	return ParseVersion(output)
}

// RequireOnBranchInclude fails when the installed git cannot resolve
// per-branch config includes. Called before any template mutation.
func RequireOnBranchInclude(ctx context.Context, runner *CommandRunner) error {
	version, err := InstalledVersion(ctx, runner)
	if err != nil {
		return err
	}
	if !version.SupportsOnBranchInclude() {
		return braiderrors.NewGitVersionError(version.String(), MinSupportedVersion.String())
	}
	return nil
}
