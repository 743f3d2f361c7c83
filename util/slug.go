// Package util provides shared utility functions.
package util

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumUnderscore = regexp.MustCompile(`[^a-z0-9_]`)
	multipleUnderscores   = regexp.MustCompile(`_{2,}`)
)

// Slugify converts a human-readable name into a directory-safe slug usable
// as a scenario or group name. It lowercases, replaces spaces and hyphens
// with underscores, strips non-[a-z0-9_], and collapses repeats.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = nonAlphanumUnderscore.ReplaceAllString(s, "")
	s = multipleUnderscores.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	return s
}
