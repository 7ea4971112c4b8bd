// Package dashboard holds the client-side state machine behind the news
// dashboard: category and search switching, infinite scroll and sorting.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hridaya423/newster/internal/domain"
)

const defaultErrorMessage = "Failed to load news"

// ErrClosed is returned by transitions after Close.
var ErrClosed = errors.New("dashboard controller is closed")

// Fetcher loads one page of articles from the proxy.
type Fetcher interface {
	Headlines(ctx context.Context, category string, page int) ([]domain.Article, error)
	Search(ctx context.Context, query string, page int) ([]domain.Article, error)
}

// UserMessager is implemented by fetch errors that carry a message fit for display.
type UserMessager interface {
	UserMessage() string
}

type Options struct {
	Category   string
	SortOption domain.SortOption
	// OnChange is called with a snapshot after every applied state change.
	OnChange func(State)
	Logger   *slog.Logger
}

// Controller owns the dashboard state. Every fetch carries a generation
// number; a response whose generation is no longer current is discarded and
// its request cancelled, so a slow reply for an old category or query can
// never overwrite a newer list.
type Controller struct {
	fetcher  Fetcher
	onChange func(State)
	log      *slog.Logger

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
	closed     bool
}

func New(fetcher Fetcher, opts Options) *Controller {
	sortOption := opts.SortOption
	if sortOption == "" {
		sortOption = domain.SortLatest
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		fetcher:  fetcher,
		onChange: opts.OnChange,
		log:      log.With("component", "dashboard"),
		state: State{
			Category:   domain.NormalizeCategory(opts.Category),
			Page:       1,
			SortOption: sortOption,
			Articles:   []domain.Article{},
			HasMore:    true,
		},
	}
}

// Load fetches the first page for the current mode, replacing the list.
func (c *Controller) Load(ctx context.Context) error {
	return c.transition(ctx, func(s *State) bool {
		s.Page = 1
		s.HasMore = true
		return true
	})
}

// ChangeCategory leaves search mode and loads the first page of category.
func (c *Controller) ChangeCategory(ctx context.Context, category string) error {
	return c.transition(ctx, func(s *State) bool {
		s.Category = domain.NormalizeCategory(category)
		s.Page = 1
		s.IsSearchMode = false
		s.SearchQuery = ""
		s.HasMore = true
		return true
	})
}

// Search enters search mode and loads the first page of results for query.
func (c *Controller) Search(ctx context.Context, query string) error {
	return c.transition(ctx, func(s *State) bool {
		s.SearchQuery = query
		s.Page = 1
		s.IsSearchMode = true
		s.HasMore = true
		return true
	})
}

// ClearSearch returns to the headlines of the current category.
func (c *Controller) ClearSearch(ctx context.Context) error {
	return c.transition(ctx, func(s *State) bool {
		s.IsSearchMode = false
		s.SearchQuery = ""
		s.Page = 1
		s.HasMore = true
		return true
	})
}

// ScrollNearBottom loads the next page unless a fetch is running or the
// previous page came back empty or failed.
func (c *Controller) ScrollNearBottom(ctx context.Context) error {
	return c.transition(ctx, func(s *State) bool {
		if s.Loading || !s.HasMore {
			return false
		}
		s.Page++
		return true
	})
}

// Retry re-issues the fetch for the current page.
func (c *Controller) Retry(ctx context.Context) error {
	return c.transition(ctx, func(s *State) bool {
		return !s.Loading
	})
}

// ChangeSort changes the display order. It never fetches.
func (c *Controller) ChangeSort(option domain.SortOption) error {
	if _, err := domain.ParseSortOption(string(option)); err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.state.SortOption = option
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.notify(snapshot)
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Visible returns the loaded articles in the selected sort order.
func (c *Controller) Visible() []domain.Article {
	c.mu.Lock()
	articles, option := c.state.Articles, c.state.SortOption
	c.mu.Unlock()
	return domain.SortArticles(articles, option)
}

// Close cancels any in-flight fetch. Later transitions return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

type fetchRequest struct {
	generation uint64
	search     bool
	query      string
	category   string
	page       int
}

// transition applies mutate under the lock and, if it returns true, runs
// the fetch the new state calls for in the calling goroutine.
func (c *Controller) transition(ctx context.Context, mutate func(*State) bool) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !mutate(&c.state) {
		c.mu.Unlock()
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.generation++

	req := fetchRequest{
		generation: c.generation,
		search:     c.state.IsSearchMode,
		query:      c.state.SearchQuery,
		category:   c.state.Category,
		page:       c.state.Page,
	}
	c.state.Loading = true
	c.state.Error = ""
	if req.page == 1 {
		c.state.HasMore = true
	}
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.notify(snapshot)

	articles, err := c.fetch(fetchCtx, req)
	cancel()

	return c.apply(req, articles, err)
}

func (c *Controller) fetch(ctx context.Context, req fetchRequest) ([]domain.Article, error) {
	if req.search {
		return c.fetcher.Search(ctx, req.query, req.page)
	}
	return c.fetcher.Headlines(ctx, req.category, req.page)
}

func (c *Controller) apply(req fetchRequest, articles []domain.Article, err error) error {
	c.mu.Lock()
	if req.generation != c.generation {
		c.mu.Unlock()
		c.log.Debug("discarding stale dashboard response",
			"generation", req.generation,
			"page", req.page,
		)
		return nil
	}
	c.cancel = nil
	c.state.Loading = false

	if err != nil {
		if req.page == 1 {
			// the list belongs to the new category or query even when it failed to load
			c.state.Articles = []domain.Article{}
		}
		c.state.Error = userMessage(err)
		c.state.HasMore = false
		snapshot := c.state.clone()
		c.mu.Unlock()

		c.log.Warn("dashboard fetch failed",
			"search", req.search,
			"category", req.category,
			"page", req.page,
			"error", err,
		)
		c.notify(snapshot)
		return fmt.Errorf("load page %d: %w", req.page, err)
	}

	if req.page == 1 {
		c.state.Articles = mergeArticles(nil, articles)
	} else {
		c.state.Articles = mergeArticles(c.state.Articles, articles)
	}
	c.state.HasMore = len(articles) > 0
	c.state.Error = ""
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.notify(snapshot)
	return nil
}

func (c *Controller) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

// mergeArticles appends page to existing, skipping URLs already present.
func mergeArticles(existing, page []domain.Article) []domain.Article {
	out := make([]domain.Article, 0, len(existing)+len(page))
	seen := make(map[string]struct{}, len(existing)+len(page))
	for _, a := range existing {
		seen[a.URL] = struct{}{}
		out = append(out, a)
	}
	for _, a := range page {
		if _, dup := seen[a.URL]; dup {
			continue
		}
		seen[a.URL] = struct{}{}
		out = append(out, a)
	}
	return out
}

func userMessage(err error) string {
	var um UserMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return defaultErrorMessage
}
