// Package dashboardclient calls the newster proxy endpoints on behalf of the
// dashboard controller.
package dashboardclient

import (
	"bytes"
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

	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/dashboard"
	"github.com/hridaya423/newster/internal/domain"
)

const maxBodyBytes = 5 << 20

// APIError is a non-success reply from the proxy. Message is the proxy's
// fixed, user-safe error text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("newster api returned status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) UserMessage() string {
	return e.Message
}

// Unwrap marks gateway and throttling replies as a temporarily unavailable
// upstream. A plain 500 from the proxy can be a missing key, so it is not.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return apperrors.ErrUpstreamUnavailable
	default:
		return nil
	}
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ dashboard.Fetcher = (*Client)(nil)

func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) Headlines(ctx context.Context, category string, page int) ([]domain.Article, error) {
	q := url.Values{}
	q.Set("category", category)
	q.Set("page", strconv.Itoa(page))

	var env domain.NewsEnvelope
	if err := c.do(ctx, http.MethodGet, "/news?"+q.Encode(), nil, &env, "Failed to fetch news"); err != nil {
		return nil, err
	}
	return env.Articles, nil
}

func (c *Client) Search(ctx context.Context, query string, page int) ([]domain.Article, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))

	var env domain.NewsEnvelope
	if err := c.do(ctx, http.MethodGet, "/search?"+q.Encode(), nil, &env, "Failed to search news"); err != nil {
		return nil, err
	}
	return env.Articles, nil
}

func (c *Client) Analyze(ctx context.Context, article domain.Article) (*domain.ArticleAnalysis, error) {
	content := article.Content
	if content == "" {
		content = article.Description
	}
	req := map[string]string{
		"title":   article.Title,
		"content": content,
		"source":  article.Source.Name,
	}

	var resp struct {
		Analysis *domain.ArticleAnalysis `json:"analysis"`
	}
	if err := c.do(ctx, http.MethodPost, "/analyze", req, &resp, "Failed to analyze article"); err != nil {
		return nil, err
	}
	if resp.Analysis == nil {
		return nil, fmt.Errorf("analyze response has no analysis: %w", apperrors.ErrMalformedResponse)
	}
	return resp.Analysis, nil
}

func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	var resp struct {
		Summary string `json:"summary"`
	}
	if err := c.do(ctx, http.MethodPost, "/summarize", map[string]string{"text": text}, &resp, "Failed to generate summary"); err != nil {
		return "", err
	}
	return resp.Summary, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any, fallbackMessage string) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, transportSentinel(err), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: fallbackMessage}
		var errBody apperrors.HTTPErrorResponse
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w: %v", apperrors.ErrMalformedResponse, err)
	}
	return nil
}

func transportSentinel(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.ErrUpstreamTimeout
	}
	return apperrors.ErrUpstreamUnavailable
}
