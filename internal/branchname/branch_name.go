// Package branchname builds and validates branch names for the braid
// naming convention. All functions are pure.
package branchname

import (
	"regexp"
	"strings"

	braiderrors "braid.dev/braid/internal/errors"
)

var (
	// separatorRegex matches runs of spaces and underscores, which collapse
	// into a single hyphen during sanitization.
	separatorRegex = regexp.MustCompile(`[ _]+`)

	// hyphenRegex collapses runs of hyphens introduced by sanitization.
	hyphenRegex = regexp.MustCompile(`-+`)
)

// Sanitize converts free-form input into a canonical slug: lowercased,
// trimmed, with runs of spaces and underscores replaced by a single
// hyphen. Sanitize is idempotent.
func Sanitize(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = separatorRegex.ReplaceAllString(slug, "-")
	slug = hyphenRegex.ReplaceAllString(slug, "-")
	return slug
}

// Build composes a branch name as
// "<client>-<description>-<timestamp>-<initials>", omitting the client
// segment and its trailing hyphen when client is empty.
func Build(client, description, timestamp, initials string) string {
	segments := make([]string, 0, 4)
	if client != "" {
		segments = append(segments, client)
	}
	segments = append(segments, description, timestamp, initials)
	return strings.Join(segments, "-")
}

// CheckForbiddenPatterns fails with a NamingPolicyViolationError when any
// of the given patterns is a substring of branchName. An empty pattern
// list accepts every name.
func CheckForbiddenPatterns(branchName string, patterns []string) error {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if strings.Contains(branchName, pattern) {
			return braiderrors.NewNamingPolicyViolationError(branchName, pattern)
		}
	}
	return nil
}
