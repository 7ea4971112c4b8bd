package rest

import (
	"bytes"
	"encoding/json"

	"github.com/hridaya423/newster/internal/domain"
)

type analyzeRequest struct {
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Source  articleSource `json:"source"`
}

// articleSource accepts the publisher either as a plain name or in the
// upstream article shape {"id": ..., "name": ...}. Other JSON values are
// kept as their literal text.
type articleSource string

func (s *articleSource) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*s = articleSource(name)
	case data[0] == '{':
		var src domain.Source
		if err := json.Unmarshal(data, &src); err != nil {
			return err
		}
		name := src.Name
		if name == "" {
			name = src.ID
		}
		*s = articleSource(name)
	default:
		*s = articleSource(data)
	}
	return nil
}

type analyzeResponse struct {
	Analysis domain.ArticleAnalysis `json:"analysis"`
}

type summarizeRequest struct {
	Text string `json:"text"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

type categoriesResponse struct {
	Categories      []string            `json:"categories"`
	DefaultCategory string              `json:"defaultCategory"`
	SortOptions     []domain.SortOption `json:"sortOptions"`
}

type upstreamHealth struct {
	State               string `json:"state"`
	TotalSuccesses      int64  `json:"totalSuccesses"`
	TotalFailures       int64  `json:"totalFailures"`
	ConsecutiveFailures int    `json:"consecutiveFailures"`
}

type healthResponse struct {
	Status    string                    `json:"status"`
	Service   string                    `json:"service"`
	Upstreams map[string]upstreamHealth `json:"upstreams,omitempty"`
}

// invalidUpstreamResponse keeps an empty article list next to the error so
// dashboard clients can render an empty grid.
type invalidUpstreamResponse struct {
	Error    string           `json:"error"`
	Articles []domain.Article `json:"articles"`
}
