package otel

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all OTel metric instruments for newster.
// It stays nil until InitMetrics runs; the Record helpers are no-ops then.
var Metrics *NewsterMetrics

// NewsterMetrics contains all metric instruments.
type NewsterMetrics struct {
	HTTPRequestsTotal     metric.Int64Counter
	HTTPRequestDuration   metric.Float64Histogram
	ArticlesDroppedTotal  metric.Int64Counter
	AnalysisFallbackTotal metric.Int64Counter
}

// InitMetrics initializes all metric instruments.
func InitMetrics() error {
	meter := otel.Meter("newster")

	httpRequests, err := meter.Int64Counter("newster_http_requests_total",
		metric.WithDescription("Total number of proxy endpoint requests"),
	)
	if err != nil {
		return err
	}

	httpDuration, err := meter.Float64Histogram("newster_http_request_duration_seconds",
		metric.WithDescription("Proxy endpoint request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	dropped, err := meter.Int64Counter("newster_articles_dropped_total",
		metric.WithDescription("Upstream article records removed by the article filter"),
	)
	if err != nil {
		return err
	}

	fallback, err := meter.Int64Counter("newster_analysis_fallback_total",
		metric.WithDescription("Analyses answered with the neutral fallback value"),
	)
	if err != nil {
		return err
	}

	Metrics = &NewsterMetrics{
		HTTPRequestsTotal:     httpRequests,
		HTTPRequestDuration:   httpDuration,
		ArticlesDroppedTotal:  dropped,
		AnalysisFallbackTotal: fallback,
	}

	return nil
}

// RecordHTTPRequest records one handled request.
func RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if Metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
	Metrics.HTTPRequestsTotal.Add(ctx, 1, attrs)
	Metrics.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordArticlesDropped records how many records a filter pass removed.
func RecordArticlesDropped(ctx context.Context, filter string, dropped int) {
	if Metrics == nil || dropped <= 0 {
		return
	}
	Metrics.ArticlesDroppedTotal.Add(ctx, int64(dropped), metric.WithAttributes(attribute.String("filter", filter)))
}

// RecordAnalysisFallback records an analysis that fell back to the default value.
func RecordAnalysisFallback(ctx context.Context, reason string) {
	if Metrics == nil {
		return
	}
	Metrics.AnalysisFallbackTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
