// Package slug derives URL safe lookup keys from category names
package slug

import (
	"regexp"
	"strings"
)

var (
	separators = regexp.MustCompile(`[\s_]+`)
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRuns = regexp.MustCompile(`-+`)
)

// Make turns a human readable name into its slug: lowercased, trimmed,
// whitespace/underscore runs become a single hyphen, anything outside
// [a-z0-9-] is dropped. Idempotent, so slugs can be re-slugged safely.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = separators.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	return hyphenRuns.ReplaceAllString(s, "-")
}
