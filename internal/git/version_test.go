package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Version
	}{
		{
			name:     "standard output",
			input:    "git version 2.39.2",
			expected: Version{Major: 2, Minor: 39, Patch: 2},
		},
		{
			name:     "apple suffix",
			input:    "git version 2.39.3 (Apple Git-146)",
			expected: Version{Major: 2, Minor: 39, Patch: 3},
		},
		{
			name:     "two component version",
			input:    "git version 2.23",
			expected: Version{Major: 2, Minor: 23, Patch: 0},
		},
		{
			name:     "windows build",
			input:    "git version 2.41.0.windows.1",
			expected: Version{Major: 2, Minor: 41, Patch: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			version, err := ParseVersion(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, version)
		})
	}
}

func TestParseVersionRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParseVersion("not a version")
	require.Error(t, err)
}

func TestInstalledVersion(t *testing.T) {
	t.Parallel()

	version, err := InstalledVersion(context.Background(), NewCommandRunner(""))
	require.NoError(t, err)
	require.GreaterOrEqual(t, version.Major, 2)
}

func TestSupportsOnBranchInclude(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		version  Version
		expected bool
	}{
		{"exactly 2.23", Version{Major: 2, Minor: 23}, true},
		{"newer minor", Version{Major: 2, Minor: 39, Patch: 2}, true},
		{"newer major", Version{Major: 3, Minor: 0}, true},
		{"too old minor", Version{Major: 2, Minor: 22, Patch: 5}, false},
		{"ancient", Version{Major: 1, Minor: 9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, tt.version.SupportsOnBranchInclude())
		})
	}
}
