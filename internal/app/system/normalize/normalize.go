// Package normalize canonicalizes user-submitted strings before they reach
// the store.
package normalize

import "strings"

// Name trims surrounding whitespace and preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Email trims and lowercases.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Code trims and collapses internal runs of whitespace to one space. Case is
// kept for display; comparisons fold separately.
func Code(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// QueryParam trims a query-string value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
