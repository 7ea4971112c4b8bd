package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hridaya423/newster/internal/adapter/newsapi"
	"github.com/hridaya423/newster/internal/adapter/rest"
	"github.com/hridaya423/newster/internal/domain"
	"github.com/hridaya423/newster/internal/infra/config"
	"github.com/hridaya423/newster/internal/infra/resilience"
	"github.com/hridaya423/newster/internal/mocks"
	"github.com/hridaya423/newster/internal/usecase"

	"go.uber.org/mock/gomock"
)

const electionBody = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {
      "source": {"id": null, "name": "No Image Daily"},
      "title": "Election night without pictures",
      "description": "d",
      "url": "https://noimage.example/election",
      "urlToImage": "",
      "publishedAt": "2024-11-05T20:00:00Z"
    },
    {
      "source": {"id": "wire", "name": "Wire"},
      "author": "A. Reporter",
      "title": "Election results are in",
      "description": "Full coverage",
      "url": "https://wire.example/election",
      "urlToImage": "https://wire.example/election.jpg",
      "publishedAt": "2024-11-06T08:30:00Z",
      "content": "Polls closed..."
    }
  ]
}`

func newStackConfig(upstream string, key string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			RequestTimeout: 5 * time.Second,
			CORSOrigins:    []string{"*"},
		},
		NewsAPI: config.NewsAPIConfig{
			APIKey:         key,
			BaseURL:        upstream,
			Country:        "us",
			SearchPageSize: 20,
			Timeout:        2 * time.Second,
		},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100},
		OTel:      config.OTelConfig{ServiceName: "newster-test"},
	}
}

func newStack(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()

	breaker := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("newsapi"))
	news := newsapi.NewClient(cfg.NewsAPI, &http.Client{Timeout: cfg.NewsAPI.Timeout}, breaker)
	llm := mocks.NewMockLLMClient(gomock.NewController(t))

	h := rest.NewHandler(
		usecase.NewHeadlinesUsecase(news),
		usecase.NewSearchUsecase(news),
		usecase.NewAnalyzeUsecase(llm),
		usecase.NewSummarizeUsecase(llm),
		cfg.OTel.ServiceName,
		breaker,
	)

	e := echo.New()
	rest.ApplyMiddleware(t.Context(), e, cfg)
	rest.RegisterRoutes(e, h, nil)
	return e
}

func TestSearchEndToEnd_DropsArticlesWithoutImage(t *testing.T) {
	var hits int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/v2/everything", r.URL.Path)
		assert.Equal(t, "election", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(electionBody))
	}))
	t.Cleanup(upstream.Close)

	e := newStack(t, newStackConfig(upstream.URL, "stub-key"))

	req := httptest.NewRequest(http.MethodGet, "/search?q=election&page=1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body domain.NewsEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Articles, 1)
	assert.Equal(t, "https://wire.example/election", body.Articles[0].URL)
	assert.Equal(t, "Wire", body.Articles[0].Source.Name)
	assert.Equal(t, 2, body.TotalResults)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestNewsEndToEnd_MissingKeyNeverCallsUpstream(t *testing.T) {
	var hits int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	t.Cleanup(upstream.Close)

	e := newStack(t, newStackConfig(upstream.URL, ""))

	for _, target := range []string{"/news", "/api/news?category=sports&page=3"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"News API key is not configured"}`, rec.Body.String())
	}
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestNewsEndToEnd_UpstreamErrorStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid"}`))
	}))
	t.Cleanup(upstream.Close)

	e := newStack(t, newStackConfig(upstream.URL, "bad-key"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news?category=business", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch news"}`, rec.Body.String())
}
