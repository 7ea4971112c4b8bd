package domain

import "context"

//go:generate mockgen -source=news_client.go -destination=../mocks/mock_news_client.go -package=mocks

// NewsClient queries the upstream headline/search provider.
// Implementations return typed application errors and never retry.
type NewsClient interface {
	Headlines(ctx context.Context, category string, page int) (*NewsEnvelope, error)
	Search(ctx context.Context, query string, page int) (*NewsEnvelope, error)
}
