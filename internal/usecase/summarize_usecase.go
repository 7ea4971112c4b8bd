package usecase

import (
	"context"
	"strings"

	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/domain"
)

type SummarizeUsecase interface {
	Execute(ctx context.Context, text string) (string, error)
}

type summarizeUsecase struct {
	llm domain.LLMClient
}

func NewSummarizeUsecase(llm domain.LLMClient) SummarizeUsecase {
	return &summarizeUsecase{llm: llm}
}

func (u *summarizeUsecase) Execute(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperrors.ValidationError("text is required", map[string]interface{}{"field": "text"})
	}

	summary, err := u.llm.Summarize(ctx, text)
	if err != nil {
		return "", upstreamFailure("failed to generate summary", err, map[string]interface{}{
			"text_length": len(text),
		})
	}
	return summary, nil
}
