// Package metrics provides Prometheus metrics for upstream API traffic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for upstream calls.
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeCircuitOpen = "circuit_open"
)

var (
	// UpstreamRequestsTotal counts upstream calls by outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newster",
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream API requests",
		},
		[]string{"upstream", "operation", "outcome"},
	)

	// UpstreamDuration measures upstream call latency.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newster",
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"upstream", "operation"},
	)

	// CircuitBreakerState tracks breaker state (0 = closed, 1 = open, 2 = half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "newster",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state per upstream (0 closed, 1 open, 2 half-open)",
		},
		[]string{"upstream"},
	)
)

// RecordUpstream records a finished upstream call.
func RecordUpstream(upstream, operation, outcome string, seconds float64) {
	UpstreamRequestsTotal.WithLabelValues(upstream, operation, outcome).Inc()
	UpstreamDuration.WithLabelValues(upstream, operation).Observe(seconds)
}

// SetBreakerState publishes the current breaker state for an upstream.
func SetBreakerState(upstream string, state int) {
	CircuitBreakerState.WithLabelValues(upstream).Set(float64(state))
}

// Handler serves every collector registered with the default registry,
// including the OTel meter bridge.
func Handler() http.Handler {
	return promhttp.Handler()
}
