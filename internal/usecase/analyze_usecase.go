package usecase

import (
	"context"
	"strings"

	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/domain"
)

type AnalyzeInput struct {
	Title   string
	Content string
	Source  string
}

type AnalyzeUsecase interface {
	Execute(ctx context.Context, input AnalyzeInput) (*domain.ArticleAnalysis, error)
}

type analyzeUsecase struct {
	llm domain.LLMClient
}

func NewAnalyzeUsecase(llm domain.LLMClient) AnalyzeUsecase {
	return &analyzeUsecase{llm: llm}
}

// Execute validates the article and asks the model for an analysis.
// Model or parse failures never surface here; the client falls back instead.
func (u *analyzeUsecase) Execute(ctx context.Context, input AnalyzeInput) (*domain.ArticleAnalysis, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, apperrors.ValidationError("title and content are required", map[string]interface{}{
			"has_title":   strings.TrimSpace(input.Title) != "",
			"has_content": strings.TrimSpace(input.Content) != "",
		})
	}

	analysis := u.llm.Analyze(ctx, input.Title, input.Content, input.Source)
	if err := analysis.Validate(); err != nil {
		return nil, apperrors.UnknownError("analysis failed validation", err, nil)
	}
	return &analysis, nil
}
