// Package newsapi is the upstream headline and search client.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/domain"
	"github.com/hridaya423/newster/internal/infra/config"
	"github.com/hridaya423/newster/internal/infra/logger"
	"github.com/hridaya423/newster/internal/infra/metrics"
	"github.com/hridaya423/newster/internal/infra/resilience"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const (
	upstreamName = "newsapi"

	headlinesPath  = "/v2/top-headlines"
	everythingPath = "/v2/everything"

	maxBodyBytes = 5 << 20
)

// StatusError describes a non-success upstream reply.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("news api returned status %d (%s)", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("news api returned status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return apperrors.ErrUpstreamStatus
}

// Client queries the headline/search provider.
// Envelopes returned by Headlines and Search may be shared between concurrent
// identical requests and must be treated as read-only.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	country    string
	pageSize   int

	breaker *resilience.CircuitBreaker
	group   singleflight.Group
	perf    *logger.PerformanceLogger
	tracer  trace.Tracer
}

var _ domain.NewsClient = (*Client)(nil)

func NewClient(cfg config.NewsAPIConfig, httpClient *http.Client, breaker *resilience.CircuitBreaker) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		country:    cfg.Country,
		pageSize:   cfg.SearchPageSize,
		breaker:    breaker,
		perf:       logger.NewPerformanceLogger(logger.Logger, 3*time.Second),
		tracer:     otel.Tracer("newster/newsapi"),
	}
}

// Headlines fetches top headlines for a category.
func (c *Client) Headlines(ctx context.Context, category string, page int) (*domain.NewsEnvelope, error) {
	if c.apiKey == "" {
		return nil, apperrors.ConfigurationError("News API key is not configured", apperrors.ErrNewsKeyMissing, nil)
	}

	q := url.Values{}
	q.Set("country", c.country)
	q.Set("category", category)
	q.Set("page", strconv.Itoa(page))

	return c.fetch(ctx, "headlines", headlinesPath, q)
}

// Search runs a free-text query, newest first.
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.NewsEnvelope, error) {
	if c.apiKey == "" {
		return nil, apperrors.ConfigurationError("News API key is not configured", apperrors.ErrNewsKeyMissing, nil)
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	q.Set("sortBy", "publishedAt")

	return c.fetch(ctx, "search", everythingPath, q)
}

func (c *Client) fetch(ctx context.Context, operation, path string, q url.Values) (*domain.NewsEnvelope, error) {
	endpoint := c.baseURL + path + "?" + q.Encode()
	start := time.Now()

	// Identical in-flight requests share one upstream call. The shared call
	// must not die with whichever caller happened to start it.
	callCtx := context.WithoutCancel(ctx)
	v, err, shared := c.group.Do(operation+"|"+q.Encode(), func() (any, error) {
		return resilience.Execute(c.breaker, func() (*domain.NewsEnvelope, error) {
			return c.do(callCtx, operation, endpoint)
		}, countsAsFailure)
	})

	elapsed := time.Since(start).Seconds()
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			metrics.RecordUpstream(upstreamName, operation, metrics.OutcomeCircuitOpen, elapsed)
			return nil, apperrors.UpstreamError("news api circuit is open", errors.Join(apperrors.ErrCircuitOpen, err),
				map[string]interface{}{"operation": operation})
		}
		metrics.RecordUpstream(upstreamName, operation, metrics.OutcomeError, elapsed)
		return nil, err
	}

	metrics.RecordUpstream(upstreamName, operation, metrics.OutcomeSuccess, elapsed)
	if shared {
		logger.FromContext(ctx).DebugContext(ctx, "news api response shared between identical requests",
			"operation", operation)
	}
	return v.(*domain.NewsEnvelope), nil
}

func (c *Client) do(ctx context.Context, operation, endpoint string) (*domain.NewsEnvelope, error) {
	ctx, span := c.tracer.Start(ctx, "newsapi."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("newsapi.operation", operation)),
	)
	defer span.End()

	timer := c.perf.StartTimer(ctx, "newsapi."+operation)
	env, err := c.roundTrip(ctx, operation, endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "news api call failed")
		timer.EndWithError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("newsapi.articles", len(env.Articles)))
	timer.End()
	return env, nil
}

func (c *Client) roundTrip(ctx context.Context, operation, endpoint string) (*domain.NewsEnvelope, error) {
	errCtx := map[string]interface{}{"operation": operation}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.UnknownError("failed to build news api request", err, errCtx)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "newster/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, apperrors.TimeoutError("news api request timed out",
				fmt.Errorf("%w: %v", apperrors.ErrUpstreamTimeout, err), errCtx)
		}
		return nil, apperrors.UpstreamError("news api request failed",
			fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err), errCtx)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.UpstreamError("failed to read news api response",
			fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err), errCtx)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := parseStatusError(resp.StatusCode, body)
		errCtx["status"] = resp.StatusCode
		logger.FromContext(ctx).WarnContext(ctx, "news api returned error status",
			"operation", operation,
			"status", resp.StatusCode,
			"upstream_code", statusErr.Code,
			"upstream_message", statusErr.Message,
		)
		return nil, apperrors.UpstreamError("news api returned an error status", statusErr, errCtx)
	}

	env, err := domain.DecodeEnvelope(body)
	if err != nil {
		return nil, apperrors.ParseError("invalid response from news api",
			fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err), errCtx)
	}
	if env.Status != "" && env.Status != "ok" {
		return nil, apperrors.ParseError("news api reported a non-ok status",
			fmt.Errorf("%w: status %q", apperrors.ErrMalformedResponse, env.Status), errCtx)
	}

	return env, nil
}

// parseStatusError extracts the provider's {"code","message"} error body when present.
func parseStatusError(status int, body []byte) *StatusError {
	out := &StatusError{StatusCode: status}
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		out.Code = payload.Code
		out.Message = payload.Message
	}
	return out
}

// countsAsFailure keeps client-side 4xx replies (bad category, bad key) from
// tripping the breaker; 429, 5xx, transport and parse failures do.
func countsAsFailure(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 || statusErr.StatusCode == http.StatusTooManyRequests
	}
	return apperrors.IsUpstreamError(err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
