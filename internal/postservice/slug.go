package postservice

import (
	"regexp"
	"strings"
)

var nonSlugRX = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe identifier from an arbitrary string: lowercase,
// every run of characters outside [a-z0-9] collapsed to a single hyphen, and
// leading/trailing hyphens stripped. Applying it to its own output is a no-op.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonSlugRX.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
