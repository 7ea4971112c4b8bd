// Package groq is the chat-completion client used for article summaries and analyses.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/domain"
	"github.com/hridaya423/newster/internal/infra/config"
	"github.com/hridaya423/newster/internal/infra/logger"
	"github.com/hridaya423/newster/internal/infra/metrics"
	appotel "github.com/hridaya423/newster/internal/infra/otel"
	"github.com/hridaya423/newster/internal/infra/resilience"
	"github.com/hridaya423/newster/internal/infra/sanitize"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	upstreamName   = "groq"
	completionPath = "/v1/chat/completions"
	maxBodyBytes   = 2 << 20
)

// StatusError describes a non-success completion reply.
type StatusError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("llm api returned status %d (%s)", e.StatusCode, e.Type)
	}
	return fmt.Sprintf("llm api returned status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return apperrors.ErrUpstreamStatus
}

type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	model        string
	maxTokens    int
	contentLimit int

	breaker *resilience.CircuitBreaker
	perf    *logger.PerformanceLogger
	tracer  trace.Tracer
}

var _ domain.LLMClient = (*Client)(nil)

func NewClient(cfg config.LLMConfig, httpClient *http.Client, breaker *resilience.CircuitBreaker) *Client {
	return &Client{
		httpClient:   httpClient,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		maxTokens:    cfg.MaxTokens,
		contentLimit: cfg.AnalyzeContentLimit,
		breaker:      breaker,
		perf:         logger.NewPerformanceLogger(logger.Logger, 10*time.Second),
		tracer:       otel.Tracer("newster/groq"),
	}
}

// Summarize asks the model for a three sentence summary of text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.ConfigurationError("LLM API key is not configured", apperrors.ErrLLMKeyMissing, nil)
	}

	reply, err := c.complete(ctx, "summarize", chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: buildSummarizePrompt(text)}},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(reply)
	if summary == "" {
		return "", apperrors.ParseError("llm api returned an empty summary", apperrors.ErrMalformedResponse,
			map[string]interface{}{"operation": "summarize"})
	}
	return summary, nil
}

// Analyze returns the model's assessment of an article. Only the first
// contentLimit runes of content are sent. Any failure is logged and answered
// with domain.FallbackAnalysis.
func (c *Client) Analyze(ctx context.Context, title, content, source string) domain.ArticleAnalysis {
	log := logger.FromContext(ctx)

	if c.apiKey == "" {
		log.WarnContext(ctx, "analysis skipped: llm api key is not configured")
		appotel.RecordAnalysisFallback(ctx, "not_configured")
		return domain.FallbackAnalysis()
	}

	body := sanitize.PlainText(sanitize.Truncate(content, c.contentLimit))
	temperature := 0.0

	reply, err := c.complete(ctx, "analyze", chatRequest{
		Model:          c.model,
		Messages:       []chatMessage{{Role: "user", Content: buildAnalysisPrompt(title, source, body)}},
		MaxTokens:      c.maxTokens,
		Temperature:    &temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		log.WarnContext(ctx, "analysis completion failed, using fallback", "error", err)
		appotel.RecordAnalysisFallback(ctx, "upstream")
		return domain.FallbackAnalysis()
	}

	analysis, err := parseAnalysis(reply)
	if err != nil {
		log.WarnContext(ctx, "analysis reply unusable, using fallback",
			"error", err,
			"reply_preview", sanitize.Truncate(reply, 200),
		)
		appotel.RecordAnalysisFallback(ctx, "parse")
		return domain.FallbackAnalysis()
	}

	return analysis
}

func (c *Client) complete(ctx context.Context, operation string, req chatRequest) (string, error) {
	start := time.Now()

	reply, err := resilience.Execute(c.breaker, func() (string, error) {
		return c.do(ctx, operation, req)
	}, countsAsFailure)

	elapsed := time.Since(start).Seconds()
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			metrics.RecordUpstream(upstreamName, operation, metrics.OutcomeCircuitOpen, elapsed)
			return "", apperrors.UpstreamError("llm api circuit is open", errors.Join(apperrors.ErrCircuitOpen, err),
				map[string]interface{}{"operation": operation})
		}
		metrics.RecordUpstream(upstreamName, operation, metrics.OutcomeError, elapsed)
		return "", err
	}

	metrics.RecordUpstream(upstreamName, operation, metrics.OutcomeSuccess, elapsed)
	return reply, nil
}

func (c *Client) do(ctx context.Context, operation string, payload chatRequest) (string, error) {
	ctx, span := c.tracer.Start(ctx, "groq."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.operation", operation),
			attribute.String("llm.model", payload.Model),
		),
	)
	defer span.End()

	timer := c.perf.StartTimer(ctx, "groq."+operation)
	reply, err := c.roundTrip(ctx, operation, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "llm api call failed")
		timer.EndWithError(err)
		return "", err
	}

	timer.End()
	return reply, nil
}

func (c *Client) roundTrip(ctx context.Context, operation string, payload chatRequest) (string, error) {
	errCtx := map[string]interface{}{"operation": operation, "model": payload.Model}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.UnknownError("failed to encode llm request", err, errCtx)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionPath, bytes.NewReader(data))
	if err != nil {
		return "", apperrors.UnknownError("failed to build llm request", err, errCtx)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", apperrors.TimeoutError("llm api request timed out",
				fmt.Errorf("%w: %v", apperrors.ErrUpstreamTimeout, err), errCtx)
		}
		return "", apperrors.UpstreamError("llm api request failed",
			fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err), errCtx)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", apperrors.UpstreamError("failed to read llm response",
			fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err), errCtx)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var apiErr apiErrorBody
		if json.Unmarshal(body, &apiErr) == nil {
			statusErr.Type = apiErr.Error.Type
			statusErr.Message = apiErr.Error.Message
		}
		errCtx["status"] = resp.StatusCode
		logger.FromContext(ctx).WarnContext(ctx, "llm api returned error status",
			"operation", operation,
			"status", resp.StatusCode,
			"upstream_type", statusErr.Type,
			"upstream_message", statusErr.Message,
		)
		return "", apperrors.UpstreamError("llm api returned an error status", statusErr, errCtx)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", apperrors.ParseError("invalid response from llm api",
			fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err), errCtx)
	}
	if len(completion.Choices) == 0 {
		return "", apperrors.ParseError("llm api returned no choices", apperrors.ErrMalformedResponse, errCtx)
	}

	return completion.Choices[0].Message.Content, nil
}

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
