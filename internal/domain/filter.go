package domain

import "strings"

// RemovedSentinel is the title the upstream provider gives retracted articles.
const RemovedSentinel = "[Removed]"

// IsDisplayableHeadline reports whether a headline record has a link and an image.
func IsDisplayableHeadline(a Article) bool {
	return strings.TrimSpace(a.URL) != "" && strings.TrimSpace(a.URLToImage) != ""
}

// IsDisplayableSearchResult additionally requires a title that is not a removal marker.
func IsDisplayableSearchResult(a Article) bool {
	title := strings.TrimSpace(a.Title)
	return IsDisplayableHeadline(a) &&
		title != "" &&
		!strings.Contains(title, RemovedSentinel)
}

// FilterHeadlines keeps displayable headline records, preserving order.
func FilterHeadlines(articles []Article) []Article {
	return filterArticles(articles, IsDisplayableHeadline)
}

// FilterSearch keeps displayable search results, preserving order.
func FilterSearch(articles []Article) []Article {
	return filterArticles(articles, IsDisplayableSearchResult)
}

func filterArticles(articles []Article, keep func(Article) bool) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
