// Package observability owns the process-wide Prometheus collectors and the
// OpenTelemetry tracer.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreMutations counts successful store writes by store and operation.
	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexcos_store_mutations_total",
		Help: "Total number of in-memory store mutations",
	}, []string{"store", "operation"})

	// AssistantReplies counts assistant answers by rule category and source.
	AssistantReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexcos_assistant_replies_total",
		Help: "Total number of assistant replies",
	}, []string{"category", "source"})

	// AssistantFailures counts remote backend failures surfaced to callers.
	AssistantFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nexcos_assistant_failures_total",
		Help: "Total number of assistant backend failures",
	})

	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexcos_redis_errors_total",
		Help: "Total number of Redis errors by operation",
	}, []string{"operation"})

	// EventsPublished counts pub/sub events by topic.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexcos_events_published_total",
		Help: "Total number of events published to Redis",
	}, []string{"topic"})

	// WebSocketConnections is the number of open chat sockets. Group ids come
	// from the request path, so they are not used as a label.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nexcos_websocket_connections",
		Help: "Number of open chat WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped for slow clients.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexcos_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)

// RecordMutation increments StoreMutations.
func RecordMutation(store, operation string) {
	StoreMutations.WithLabelValues(store, operation).Inc()
}
