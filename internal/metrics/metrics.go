// Package metrics declares the prometheus collectors shared by the api and worker.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wedding_http_requests_total",
			Help: "HTTP requests handled, by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wedding_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	Messages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wedding_messages_total",
			Help: "Outbound campaign messages by channel and outcome",
		},
		[]string{"channel", "status"},
	)

	BulkJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wedding_bulk_jobs_total",
			Help: "Bulk message jobs reaching a final state",
		},
		[]string{"status"},
	)

	ProviderBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wedding_provider_breaker_state",
			Help: "Circuit breaker state per provider (0=closed, 1=half-open, 2=open)",
		},
		[]string{"provider"},
	)

	CostMicros = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wedding_cost_micros_total",
			Help: "Accumulated provider cost in micro currency units",
		},
		[]string{"kind"},
	)
)

// ObserveHTTP records one finished request.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
