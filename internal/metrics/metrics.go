package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session Outcome Metrics
var (
	// OutcomesRecorded tracks outcome reports accepted by the API, by result
	OutcomesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_outcomes_total",
			Help: "Total session outcomes recorded by result (win/loss)",
		},
		[]string{"result"},
	)

	// OutcomeRecordFailures tracks outcome reports that failed to persist
	OutcomeRecordFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_outcome_failures_total",
			Help: "Total outcome reports that failed to persist",
		},
	)

	// SignupsTotal tracks account creations by result
	SignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Total signup attempts by result (created/taken/invalid)",
		},
		[]string{"result"},
	)

	// LoginsTotal tracks login attempts by result
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total login attempts by result (success/failure)",
		},
		[]string{"result"},
	)
)

// Redis Operations Metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks Redis connection errors
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// LeaderboardCacheFallbacks tracks leaderboard reads that fell through to PostgreSQL
	LeaderboardCacheFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leaderboard_cache_fallbacks_total",
			Help: "Total leaderboard reads served from PostgreSQL after a cache miss or error",
		},
	)
)

// Database Metrics
var (
	// DBQueryDuration tracks database query duration by query name
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks database errors by query name
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database errors by query",
		},
		[]string{"query"},
	)
)

// HTTP Error Metrics
// Note: http_errors_total{type} is provided by internal/errors package
