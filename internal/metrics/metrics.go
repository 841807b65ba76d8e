package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Hub metrics
var (
	// HubSubscribers tracks the number of currently registered push subscribers
	HubSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_connected_subscribers",
			Help: "Number of currently connected WebSocket subscribers",
		},
	)

	// HubBroadcastsTotal tracks completed broadcast passes
	HubBroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_broadcasts_total",
			Help: "Total broadcast passes performed by the dispatcher",
		},
	)

	// HubMessagesDelivered tracks successful per-subscriber deliveries
	HubMessagesDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_messages_delivered_total",
			Help: "Total messages successfully delivered to subscribers",
		},
	)

	// HubDeadSubscribersEvicted tracks subscribers removed after failed delivery
	HubDeadSubscribersEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_dead_subscribers_evicted_total",
			Help: "Total subscribers removed after a failed or skipped delivery",
		},
	)

	// HubBroadcastDuration tracks full broadcast pass latency in seconds
	HubBroadcastDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hub_broadcast_duration_seconds",
			Help:    "Duration of a full broadcast pass in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
	)
)

// Ingest metrics
var (
	// ReadingsIngestedTotal tracks write-endpoint outcomes by status
	ReadingsIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readings_ingested_total",
			Help: "Total ingested readings by outcome (created/duplicate)",
		},
		[]string{"status"},
	)

	// LatestCacheHits tracks latest-reading cache hits
	LatestCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "latest_cache_hits_total",
			Help: "Total latest-reading requests served from the cache",
		},
	)

	// LatestCacheMisses tracks latest-reading cache misses
	LatestCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "latest_cache_misses_total",
			Help: "Total latest-reading requests that fell through to Postgres",
		},
	)
)

// Redis metrics
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

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)
