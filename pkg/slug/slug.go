package slug

import (
	"errors"
	"regexp"
	"strings"
)

// Sentinel errors for name sanitization failures.
var (
	ErrEmptyName = errors.New("name cannot be empty")
	ErrEmptySlug = errors.New("name produces empty slug after sanitization")
)

var (
	disallowed  = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRuns  = regexp.MustCompile(`-+`)
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Sanitize converts a display name into a URL-safe slug.
//
// Rules: lowercase, spaces become hyphens, everything outside [a-z0-9-] is
// stripped, hyphen runs collapse to one, leading/trailing hyphens are
// trimmed. "Data Structures and Algorithms" becomes
// "data-structures-and-algorithms".
func Sanitize(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}

	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return "", ErrEmptySlug
	}
	return s, nil
}

// IsValid reports whether s is a well-formed slug: non-empty groups of
// lowercase alphanumerics separated by single hyphens.
func IsValid(s string) bool {
	return slugPattern.MatchString(s)
}
