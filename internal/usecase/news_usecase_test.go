package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/domain"
	"github.com/hridaya423/newster/internal/mocks"
	"github.com/hridaya423/newster/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func publishedAt(s string) *time.Time {
	ts, _ := time.Parse(time.RFC3339, s)
	return &ts
}

func sampleEnvelope() *domain.NewsEnvelope {
	return &domain.NewsEnvelope{
		Status:       "ok",
		TotalResults: 4,
		Articles: []domain.Article{
			{Title: "Complete", URL: "https://a.example/1", URLToImage: "https://img.example/1.jpg", PublishedAt: publishedAt("2024-01-03T10:00:00Z")},
			{Title: "No image", URL: "https://a.example/2"},
			{Title: "[Removed]", URL: "https://a.example/3", URLToImage: "https://img.example/3.jpg"},
			{Title: "", URL: "https://a.example/4", URLToImage: "https://img.example/4.jpg"},
		},
	}
}

func TestParsePage(t *testing.T) {
	tests := map[string]int{
		"":    1,
		"1":   1,
		" 3 ": 3,
		"0":   1,
		"-2":  1,
		"abc": 1,
		"2.5": 1,
	}
	for raw, want := range tests {
		assert.Equal(t, want, usecase.ParsePage(raw), "raw=%q", raw)
	}
}

func TestHeadlinesUsecase_Execute(t *testing.T) {
	tests := map[string]struct {
		category     string
		page         string
		setupMock    func(m *mocks.MockNewsClient)
		wantTitles   []string
		wantErrCheck func(t *testing.T, err error)
	}{
		"applies defaults and headline filter": {
			category: "",
			page:     "",
			setupMock: func(m *mocks.MockNewsClient) {
				m.EXPECT().Headlines(gomock.Any(), "general", 1).Return(sampleEnvelope(), nil)
			},
			wantTitles: []string{"Complete", "[Removed]", ""},
		},
		"normalizes category and page": {
			category: " Technology ",
			page:     "4",
			setupMock: func(m *mocks.MockNewsClient) {
				m.EXPECT().Headlines(gomock.Any(), "technology", 4).Return(&domain.NewsEnvelope{Status: "ok"}, nil)
			},
			wantTitles: []string{},
		},
		"configuration error passes through": {
			category: "sports",
			setupMock: func(m *mocks.MockNewsClient) {
				m.EXPECT().Headlines(gomock.Any(), "sports", 1).
					Return(nil, apperrors.ConfigurationError("News API key is not configured", apperrors.ErrNewsKeyMissing, nil))
			},
			wantErrCheck: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsConfigurationError(err))
			},
		},
		"parse error becomes upstream error": {
			setupMock: func(m *mocks.MockNewsClient) {
				m.EXPECT().Headlines(gomock.Any(), "general", 1).
					Return(nil, apperrors.ParseError("bad body", apperrors.ErrMalformedResponse, nil))
			},
			wantErrCheck: func(t *testing.T, err error) {
				assert.Equal(t, apperrors.ErrCodeExternalAPI, apperrors.CodeOf(err))
				assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)
			},
		},
		"nil envelope is an upstream error": {
			setupMock: func(m *mocks.MockNewsClient) {
				m.EXPECT().Headlines(gomock.Any(), "general", 1).Return(nil, nil)
			},
			wantErrCheck: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsUpstreamError(err))
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			news := mocks.NewMockNewsClient(ctrl)
			tc.setupMock(news)

			got, err := usecase.NewHeadlinesUsecase(news).Execute(context.Background(), tc.category, tc.page)

			if tc.wantErrCheck != nil {
				require.Error(t, err)
				assert.Nil(t, got)
				tc.wantErrCheck(t, err)
				return
			}
			require.NoError(t, err)
			titles := make([]string, 0, len(got.Articles))
			for _, a := range got.Articles {
				titles = append(titles, a.Title)
			}
			assert.Equal(t, tc.wantTitles, titles)
		})
	}
}

func TestHeadlinesUsecase_KeepsEnvelopeFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	news := mocks.NewMockNewsClient(ctrl)
	upstream := sampleEnvelope()
	news.EXPECT().Headlines(gomock.Any(), "general", 2).Return(upstream, nil)

	got, err := usecase.NewHeadlinesUsecase(news).Execute(context.Background(), "general", "2")
	require.NoError(t, err)

	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, 4, got.TotalResults)
	assert.Len(t, upstream.Articles, 4, "upstream envelope must not be mutated")
}

func TestSearchUsecase_Execute(t *testing.T) {
	t.Run("blank query is rejected without upstream call", func(t *testing.T) {
		for _, q := range []string{"", "   ", "\t\n"} {
			ctrl := gomock.NewController(t)
			news := mocks.NewMockNewsClient(ctrl)

			got, err := usecase.NewSearchUsecase(news).Execute(context.Background(), q, "1")

			assert.Nil(t, got)
			assert.True(t, apperrors.IsValidationError(err), "query %q", q)
		}
	})

	t.Run("applies search filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		news := mocks.NewMockNewsClient(ctrl)
		news.EXPECT().Search(gomock.Any(), "election", 1).Return(sampleEnvelope(), nil)

		got, err := usecase.NewSearchUsecase(news).Execute(context.Background(), "  election ", "")
		require.NoError(t, err)

		require.Len(t, got.Articles, 1)
		assert.Equal(t, "Complete", got.Articles[0].Title)
	})

	t.Run("upstream error keeps its category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		news := mocks.NewMockNewsClient(ctrl)
		upstreamErr := apperrors.UpstreamError("news api returned an error status", apperrors.ErrUpstreamStatus, nil)
		news.EXPECT().Search(gomock.Any(), "markets", 2).Return(nil, upstreamErr)

		_, err := usecase.NewSearchUsecase(news).Execute(context.Background(), "markets", "2")

		assert.Same(t, upstreamErr, err)
	})

	t.Run("timeout becomes upstream error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		news := mocks.NewMockNewsClient(ctrl)
		news.EXPECT().Search(gomock.Any(), "markets", 1).
			Return(nil, apperrors.TimeoutError("timed out", apperrors.ErrUpstreamTimeout, nil))

		_, err := usecase.NewSearchUsecase(news).Execute(context.Background(), "markets", "x")

		assert.Equal(t, apperrors.ErrCodeExternalAPI, apperrors.CodeOf(err))
		assert.ErrorIs(t, err, apperrors.ErrUpstreamTimeout)
	})
}
