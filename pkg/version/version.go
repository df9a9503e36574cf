// Package version implements the two-part material version scheme.
//
// Versions render as "v{major}.{minor}". Creation starts at v1.0; routine
// updates bump the minor part (v1.9 -> v1.10), major bumps reset minor to
// zero. Comparison is numeric, never lexicographic.
package version

import (
	"fmt"
	"regexp"
	"strconv"
)

// Bump kinds accepted by Increment.
const (
	BumpMinor = "minor"
	BumpMajor = "major"
)

var (
	parsePattern = regexp.MustCompile(`^v?(\d+)\.(\d+)`)
	validPattern = regexp.MustCompile(`^v?\d+\.\d+$`)
)

// Initial returns the version assigned to newly created materials.
func Initial() string {
	return "v1.0"
}

// Parse extracts (major, minor) from a version string. Unparsable input
// falls back to (1, 0): callers treat it as "no prior version" rather than
// an error. Use IsValid first when malformed input must be rejected.
func Parse(s string) (major, minor int) {
	m := parsePattern.FindStringSubmatch(s)
	if m == nil {
		return 1, 0
	}
	major, _ = strconv.Atoi(m[1])
	minor, _ = strconv.Atoi(m[2])
	return major, minor
}

// Format renders a (major, minor) pair as a version string.
func Format(major, minor int) string {
	return fmt.Sprintf("v%d.%d", major, minor)
}

// Increment bumps a version. BumpMinor raises the minor part; BumpMajor
// raises the major part and resets minor to zero. Any other kind is
// treated as minor.
func Increment(current, kind string) string {
	major, minor := Parse(current)
	if kind == BumpMajor {
		return Format(major+1, 0)
	}
	return Format(major, minor+1)
}

// Compare returns -1, 0 or 1 ordering a against b, comparing major then
// minor numerically.
func Compare(a, b string) int {
	aMajor, aMinor := Parse(a)
	bMajor, bMinor := Parse(b)

	if aMajor != bMajor {
		if aMajor > bMajor {
			return 1
		}
		return -1
	}
	if aMinor != bMinor {
		if aMinor > bMinor {
			return 1
		}
		return -1
	}
	return 0
}

// IsValid reports whether s is exactly a version string, with or without
// the leading "v".
func IsValid(s string) bool {
	return validPattern.MatchString(s)
}
