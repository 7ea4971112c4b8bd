package domain

import "context"

//go:generate mockgen -source=llm_client.go -destination=../mocks/mock_llm_client.go -package=mocks

// LLMClient talks to the hosted chat-completion model.
type LLMClient interface {
	// Summarize returns a short free-text summary or an error when the completion call fails.
	Summarize(ctx context.Context, text string) (string, error)
	// Analyze always returns a well-formed analysis, falling back to FallbackAnalysis.
	Analyze(ctx context.Context, title, content, source string) ArticleAnalysis
}
