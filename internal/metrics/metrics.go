// Package metrics declares the Prometheus collectors for the recommendation
// service. Collectors register with the default registry on import.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seedrec_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seedrec_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	APIErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seedrec_api_errors_total",
			Help: "Error responses by error code",
		},
		[]string{"code"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seedrec_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	RateLimitKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seedrec_rate_limit_keys",
			Help: "Client keys currently tracked by the rate limiter",
		},
	)

	// Upstream generation
	UpstreamAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seedrec_upstream_attempts_total",
			Help: "Generation attempts by provider role and outcome",
		},
		[]string{"provider", "outcome"}, // "primary"/"fallback"; "success", "call_error", "parse_error"
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seedrec_generation_duration_seconds",
			Help:    "End-to-end generation latency including retries",
			Buckets: []float64{0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"domain", "result"},
	)

	ItemsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seedrec_items_returned",
			Help:    "Recommendations returned per request after post-processing",
			Buckets: []float64{0, 1, 3, 5, 10, 15, 20},
		},
		[]string{"domain"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "seedrec_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, route string, status int, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordUpstreamAttempt(provider, outcome string) {
	UpstreamAttemptsTotal.WithLabelValues(provider, outcome).Inc()
}

func RecordGeneration(domain, result string, d time.Duration) {
	GenerationDuration.WithLabelValues(domain, result).Observe(d.Seconds())
}
