// Package sanitize turns upstream article markup into prompt-safe plain text.
package sanitize

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy drops every element and attribute; bluemonday policies are safe for concurrent use.
var strictPolicy = bluemonday.StrictPolicy()

// PlainText strips all markup from raw, decodes entities and collapses whitespace.
func PlainText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := raw
	if strings.ContainsAny(text, "<&") {
		text = html.UnescapeString(strictPolicy.Sanitize(text))
	}
	return strings.Join(strings.Fields(text), " ")
}

// Truncate returns at most limit runes of s. A non-positive limit returns s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}

	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
