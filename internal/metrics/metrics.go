// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridpulse_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gridpulse_http_request_duration_seconds",
			Help:    "Histogram of response durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// MessagesSent counts outbound WhatsApp sends by message type and outcome.
	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridpulse_whatsapp_messages_total",
			Help: "Outbound WhatsApp messages by type and outcome",
		},
		[]string{"message_type", "outcome"},
	)

	StatusCallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridpulse_whatsapp_status_callbacks_total",
			Help: "Delivery status callbacks by status and whether a notification matched",
		},
		[]string{"status", "matched"},
	)

	SubscriptionChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridpulse_subscription_changes_total",
			Help: "Opt-in and opt-out transitions by source",
		},
		[]string{"action", "source"},
	)

	// ProviderBreakerState is 0 closed, 1 half-open, 2 open.
	ProviderBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gridpulse_provider_circuit_breaker_state",
			Help: "Messaging provider circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"breaker"},
	)

	ProviderRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridpulse_provider_rejected_total",
			Help: "Sends refused locally because the provider circuit breaker was not closed",
		},
		[]string{"breaker"},
	)

	// DeliveryLatency measures send-to-delivered time for messages still in
	// the sent index.
	DeliveryLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridpulse_whatsapp_delivery_latency_seconds",
			Help:    "Time from provider acceptance to the delivered callback",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		},
	)

	BroadcastDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridpulse_broadcast_duration_seconds",
			Help:    "Wall time of a full broadcast run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

func Init() {
	prometheus.MustRegister(RequestCount, RequestDuration, MessagesSent, StatusCallbacks, SubscriptionChanges, BroadcastDuration,
		ProviderBreakerState, ProviderRejected, DeliveryLatency)
}
