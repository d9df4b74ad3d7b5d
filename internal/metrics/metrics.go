// Package metrics exposes Prometheus instrumentation for the API server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Business Metrics
var (
	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of crop recommendation lists served",
		},
	)

	TaskTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_transitions_total",
			Help: "Total number of farm task status transitions",
		},
		[]string{"to_status"},
	)

	ScansAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scans_analyzed_total",
			Help: "Total number of crop health scans analyzed",
		},
		[]string{"outcome"},
	)

	ReportsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of farm reports generated",
		},
	)

	OTPsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "otps_issued_total",
			Help: "Total number of login codes issued",
		},
	)

	FeedRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_refreshes_total",
			Help: "Total number of community feed pull-to-refresh syncs",
		},
	)
)
