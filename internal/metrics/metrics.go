// Package metrics holds the prometheus collectors of the API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Matching Metrics
	MatchRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_requests_total",
			Help: "Total number of ingredient match requests",
		},
	)

	MatchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_results",
			Help:    "Number of recipes returned per ingredient match",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	MatchSkippedRecipes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_skipped_recipes_total",
			Help: "Recipes skipped by the matcher because they have no required ingredients",
		},
	)

	// Suggestion Metrics
	SuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestions_total",
			Help: "Total number of suggestion requests by the pass that produced them",
		},
		[]string{"pass"}, // "strict", "relaxed"
	)

	// Vision Metrics
	VisionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vision_requests_total",
			Help: "Total number of vision extraction calls",
		},
		[]string{"result"}, // "success", "empty", "error", "circuit_open"
	)

	VisionRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vision_request_duration_seconds",
			Help:    "Duration of upstream vision extraction calls",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	VisionCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vision_cache_hits_total",
			Help: "Total number of vision extraction cache hits",
		},
	)

	VisionCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vision_cache_misses_total",
			Help: "Total number of vision extraction cache misses",
		},
	)

	VisionCacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vision_cache_errors_total",
			Help: "Vision cache failures that were bypassed",
		},
		[]string{"operation"}, // "get", "set"
	)

	VisionBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vision_circuit_breaker_state",
			Help: "Vision circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordMatch records one ingredient match and its outcome
func RecordMatch(results, skipped int) {
	MatchRequestsTotal.Inc()
	MatchResults.Observe(float64(results))
	MatchSkippedRecipes.Add(float64(skipped))
}

// RecordSuggestion records which suggestion pass produced the result
func RecordSuggestion(fallback bool) {
	pass := "strict"
	if fallback {
		pass = "relaxed"
	}
	SuggestionsTotal.WithLabelValues(pass).Inc()
}

// RecordVisionRequest records an upstream vision call
func RecordVisionRequest(result string, duration time.Duration) {
	VisionRequestsTotal.WithLabelValues(result).Inc()
	if duration > 0 {
		VisionRequestDuration.Observe(duration.Seconds())
	}
}
