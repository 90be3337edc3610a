// Package observability provides metrics and tracing for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpilot_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// GenerationLatency records calendar generation latency, including the
	// upstream model call.
	GenerationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "postpilot_generation_latency_seconds",
		Help:    "Calendar generation latency in seconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 90},
	})

	// GenerationOutcomes counts generation attempts by result.
	GenerationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpilot_generation_outcomes_total",
		Help: "Calendar generation attempts by outcome (ok, api_error, parse_error, invalid)",
	}, []string{"outcome"})

	// CalendarCacheHits counts calendar cache lookups by result.
	CalendarCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpilot_calendar_cache_lookups_total",
		Help: "Calendar cache lookups by result (hit, miss)",
	}, []string{"result"})

	// RateLimitRejections counts rejected rate-limited requests by resource.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpilot_rate_limit_rejections_total",
		Help: "Requests rejected by the rate limiter, by resource",
	}, []string{"resource"})
)

// ObserveGeneration records the latency and outcome of one generation attempt.
func ObserveGeneration(outcome string, start time.Time) {
	GenerationLatency.Observe(time.Since(start).Seconds())
	GenerationOutcomes.WithLabelValues(outcome).Inc()
}
