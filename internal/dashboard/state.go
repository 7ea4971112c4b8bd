package dashboard

import (
	"slices"

	"github.com/hridaya423/newster/internal/domain"
)

// State is the dashboard view state. Values returned by Controller.Snapshot
// are copies and safe to keep.
type State struct {
	Category     string
	SearchQuery  string
	Page         int
	SortOption   domain.SortOption
	Articles     []domain.Article
	Loading      bool
	HasMore      bool
	Error        string
	IsSearchMode bool
}

func (s State) clone() State {
	s.Articles = slices.Clone(s.Articles)
	return s
}

// LoadMoreThreshold is how close, in pixels, the viewport bottom must be to
// the document end before the next page is requested.
const LoadMoreThreshold = 100

// ShouldLoadMore reports whether a scroll position is near enough to the end
// of the document to load the next page.
func ShouldLoadMore(scrollTop, viewportHeight, documentHeight float64) bool {
	return viewportHeight+scrollTop >= documentHeight-LoadMoreThreshold
}
