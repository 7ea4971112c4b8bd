package usecase_test

import (
	"context"
	"testing"

	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/domain"
	"github.com/hridaya423/newster/internal/mocks"
	"github.com/hridaya423/newster/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAnalyzeUsecase_Execute(t *testing.T) {
	tests := map[string]struct {
		input     usecase.AnalyzeInput
		setupMock func(m *mocks.MockLLMClient)
		want      *domain.ArticleAnalysis
		wantErr   func(t *testing.T, err error)
	}{
		"returns the model analysis": {
			input: usecase.AnalyzeInput{Title: "Rates cut", Content: "The central bank cut rates.", Source: "Wire"},
			setupMock: func(m *mocks.MockLLMClient) {
				m.EXPECT().Analyze(gomock.Any(), "Rates cut", "The central bank cut rates.", "Wire").
					Return(domain.FallbackAnalysis())
			},
			want: func() *domain.ArticleAnalysis { a := domain.FallbackAnalysis(); return &a }(),
		},
		"missing title": {
			input:     usecase.AnalyzeInput{Title: "  ", Content: "body"},
			setupMock: func(m *mocks.MockLLMClient) {},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsValidationError(err))
			},
		},
		"missing content": {
			input:     usecase.AnalyzeInput{Title: "Title"},
			setupMock: func(m *mocks.MockLLMClient) {},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsValidationError(err))
			},
		},
		"malformed analysis is an internal error": {
			input: usecase.AnalyzeInput{Title: "Title", Content: "body"},
			setupMock: func(m *mocks.MockLLMClient) {
				m.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(domain.ArticleAnalysis{Sentiment: "mixed"})
			},
			wantErr: func(t *testing.T, err error) {
				assert.Equal(t, apperrors.ErrCodeUnknown, apperrors.CodeOf(err))
				assert.False(t, apperrors.IsValidationError(err))
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			llm := mocks.NewMockLLMClient(ctrl)
			tc.setupMock(llm)

			got, err := usecase.NewAnalyzeUsecase(llm).Execute(context.Background(), tc.input)

			if tc.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)
				tc.wantErr(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSummarizeUsecase_Execute(t *testing.T) {
	tests := map[string]struct {
		text      string
		setupMock func(m *mocks.MockLLMClient)
		want      string
		wantErr   func(t *testing.T, err error)
	}{
		"returns summary": {
			text: "Long article text",
			setupMock: func(m *mocks.MockLLMClient) {
				m.EXPECT().Summarize(gomock.Any(), "Long article text").Return("Short.", nil)
			},
			want: "Short.",
		},
		"empty text": {
			text:      " ",
			setupMock: func(m *mocks.MockLLMClient) {},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsValidationError(err))
			},
		},
		"missing key is a configuration error": {
			text: "text",
			setupMock: func(m *mocks.MockLLMClient) {
				m.EXPECT().Summarize(gomock.Any(), "text").
					Return("", apperrors.ConfigurationError("LLM API key is not configured", apperrors.ErrLLMKeyMissing, nil))
			},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsConfigurationError(err))
			},
		},
		"completion failure": {
			text: "text",
			setupMock: func(m *mocks.MockLLMClient) {
				m.EXPECT().Summarize(gomock.Any(), "text").Return("", assert.AnError)
			},
			wantErr: func(t *testing.T, err error) {
				assert.Equal(t, apperrors.ErrCodeExternalAPI, apperrors.CodeOf(err))
				assert.ErrorIs(t, err, assert.AnError)
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			llm := mocks.NewMockLLMClient(ctrl)
			tc.setupMock(llm)

			got, err := usecase.NewSummarizeUsecase(llm).Execute(context.Background(), tc.text)

			if tc.wantErr != nil {
				require.Error(t, err)
				assert.Empty(t, got)
				tc.wantErr(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
