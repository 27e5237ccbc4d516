package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BackendRequestsTotal counts requests sent to the rental backend.
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentadmin_backend_requests_total",
			Help: "Requests sent to the rental backend by method and status code.",
		},
		[]string{"method", "status"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rentadmin_backend_request_duration_seconds",
			Help:    "Latency of rental backend requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentadmin_query_cache_lookups_total",
			Help: "Query cache lookups by result (hit, miss, shared).",
		},
		[]string{"result"},
	)

	Invalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentadmin_query_cache_invalidations_total",
			Help: "Tags invalidated by mutations.",
		},
		[]string{"tag"},
	)

	Refetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentadmin_query_refetches_total",
		Help: "Subscribed queries re-executed after invalidation.",
	})

	ActionOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentadmin_action_outcomes_total",
			Help: "Dashboard action submissions by action and outcome.",
		},
		[]string{"action", "outcome"},
	)

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentadmin_http_rate_limited_total",
		Help: "API requests rejected by the per-IP rate limiter.",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rentadmin_sessions_active",
		Help: "Dashboard sessions currently held in memory.",
	})
)
