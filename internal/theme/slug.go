package theme

import "strings"

// Slugify lowercases s and joins its [a-z0-9] runs with single hyphens.
func Slugify(s string) string {
	return strings.Join(Tokenize(s), "-")
}

// NormalizeName collapses whitespace runs to a single space and trims the
// result.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
