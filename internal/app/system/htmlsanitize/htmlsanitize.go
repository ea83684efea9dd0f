// Package htmlsanitize cleans user-supplied text before it is stored.
//
// Group descriptions may carry light formatting and go through Sanitize.
// Names and member display fields must be plain text and go through
// PlainText.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps safe formatting markup and removes scripts, event handlers,
// and javascript: URLs.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// PlainText strips all markup and returns unescaped text.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	// StrictPolicy escapes what it keeps; the value is stored as text, not HTML.
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
