package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/domain"
)

type SearchUsecase interface {
	// Execute returns filtered search results. A blank query is rejected
	// before any credential check or upstream call.
	Execute(ctx context.Context, query, page string) (*domain.NewsEnvelope, error)
}

type searchUsecase struct {
	news domain.NewsClient
}

func NewSearchUsecase(news domain.NewsClient) SearchUsecase {
	return &searchUsecase{news: news}
}

func (u *searchUsecase) Execute(ctx context.Context, query, page string) (*domain.NewsEnvelope, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.ValidationError("search query is required", map[string]interface{}{"field": "q"})
	}
	pageNum := ParsePage(page)

	envelope, err := u.news.Search(ctx, query, pageNum)
	if err != nil {
		return nil, upstreamFailure("failed to search news", err, map[string]interface{}{
			"query": query,
			"page":  pageNum,
		})
	}
	if envelope == nil {
		return nil, apperrors.UpstreamError("failed to search news", apperrors.ErrMalformedResponse, nil)
	}

	kept := domain.FilterSearch(envelope.Articles)
	recordDropped(ctx, "search", len(envelope.Articles), len(kept))

	slog.DebugContext(ctx, "search results fetched",
		"query", query,
		"page", pageNum,
		"received", len(envelope.Articles),
		"kept", len(kept),
	)

	return envelope.WithArticles(kept), nil
}
