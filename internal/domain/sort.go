package domain

import (
	"fmt"
	"slices"
	"strings"
)

// SortOption selects the display order of a loaded article list.
type SortOption string

const (
	SortLatest    SortOption = "latest"
	SortOldest    SortOption = "oldest"
	SortRelevance SortOption = "relevance"
)

// SortOptions lists the options in menu order.
var SortOptions = []SortOption{SortLatest, SortOldest, SortRelevance}

// ParseSortOption accepts a case-insensitive option name.
func ParseSortOption(s string) (SortOption, error) {
	opt := SortOption(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortOptions, opt) {
		return opt, nil
	}
	return "", fmt.Errorf("unknown sort option %q", s)
}

// SortArticles returns a new slice ordered by option. The sort is stable:
// equal timestamps keep their loaded order, and articles without a
// timestamp stay after every dated article. Relevance keeps loaded order.
func SortArticles(articles []Article, option SortOption) []Article {
	out := slices.Clone(articles)
	if out == nil {
		out = []Article{}
	}

	var cmp func(a, b Article) int
	switch option {
	case SortLatest:
		cmp = func(a, b Article) int { return compareDated(a, b, true) }
	case SortOldest:
		cmp = func(a, b Article) int { return compareDated(a, b, false) }
	default:
		return out
	}

	slices.SortStableFunc(out, cmp)
	return out
}

func compareDated(a, b Article, descending bool) int {
	switch {
	case a.PublishedAt == nil && b.PublishedAt == nil:
		return 0
	case a.PublishedAt == nil:
		return 1
	case b.PublishedAt == nil:
		return -1
	}

	c := a.PublishedAt.Compare(*b.PublishedAt)
	if descending {
		return -c
	}
	return c
}
