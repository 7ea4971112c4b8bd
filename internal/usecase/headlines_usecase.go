package usecase

import (
	"context"
	"log/slog"

	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/domain"
	appotel "github.com/hridaya423/newster/internal/infra/otel"
)

type HeadlinesUsecase interface {
	// Execute returns the filtered top headlines for category.
	Execute(ctx context.Context, category, page string) (*domain.NewsEnvelope, error)
}

type headlinesUsecase struct {
	news domain.NewsClient
}

func NewHeadlinesUsecase(news domain.NewsClient) HeadlinesUsecase {
	return &headlinesUsecase{news: news}
}

func (u *headlinesUsecase) Execute(ctx context.Context, category, page string) (*domain.NewsEnvelope, error) {
	category = domain.NormalizeCategory(category)
	pageNum := ParsePage(page)

	envelope, err := u.news.Headlines(ctx, category, pageNum)
	if err != nil {
		return nil, upstreamFailure("failed to fetch headlines", err, map[string]interface{}{
			"category": category,
			"page":     pageNum,
		})
	}
	if envelope == nil {
		return nil, apperrors.UpstreamError("failed to fetch headlines", apperrors.ErrMalformedResponse, nil)
	}

	kept := domain.FilterHeadlines(envelope.Articles)
	recordDropped(ctx, "headlines", len(envelope.Articles), len(kept))

	slog.DebugContext(ctx, "headlines fetched",
		"category", category,
		"page", pageNum,
		"received", len(envelope.Articles),
		"kept", len(kept),
	)

	return envelope.WithArticles(kept), nil
}

// upstreamFailure keeps configuration and upstream errors as they are and
// folds anything else (parse, timeout, unknown) into an UpstreamError.
func upstreamFailure(message string, err error, ctx map[string]interface{}) error {
	if apperrors.IsConfigurationError(err) || apperrors.CodeOf(err) == apperrors.ErrCodeExternalAPI {
		return err
	}
	return apperrors.UpstreamError(message, err, ctx)
}

func recordDropped(ctx context.Context, filter string, received, kept int) {
	if dropped := received - kept; dropped > 0 {
		appotel.RecordArticlesDropped(ctx, filter, dropped)
	}
}
