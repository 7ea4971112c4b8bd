package domain

import "strings"

// DefaultCategory is used when a headline request names no category.
const DefaultCategory = "general"

// Categories are the dashboard tabs, in display order.
var Categories = []string{
	"general",
	"business",
	"technology",
	"politics",
	"entertainment",
	"health",
	"science",
	"sports",
}

// NormalizeCategory trims and lowercases a category, defaulting to DefaultCategory.
// Unknown categories pass through; the upstream decides what it supports.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return DefaultCategory
	}
	return c
}
