package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Agent-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agent_platform",
			Subsystem: "agent_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agent_platform",
			Subsystem: "agent_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Provider call counters, one series per capability operation
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agent_platform",
			Subsystem: "agent_api",
			Name:      "provider_calls_total",
			Help:      "Total AI provider calls",
		},
		[]string{"operation", "status"},
	)

	// Provider call duration
	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agent_platform",
			Subsystem: "agent_api",
			Name:      "provider_call_duration_seconds",
			Help:      "AI provider call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"operation"},
	)

	// Synthesized audio bytes returned to callers
	SynthesizedAudioBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agent_platform",
			Subsystem: "agent_api",
			Name:      "synthesized_audio_bytes_total",
			Help:      "Total bytes of synthesized speech returned",
		},
	)

	// Sessions
	SessionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agent_platform",
			Subsystem: "agent_api",
			Name:      "sessions_created_total",
			Help:      "Total sessions created",
		},
	)
)

// RecordRequest records an HTTP request observation.
func RecordRequest(method, endpoint, status string, duration float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordProviderCall records one AI provider call observation.
func RecordProviderCall(operation, status string, duration float64) {
	ProviderCallsTotal.WithLabelValues(operation, status).Inc()
	ProviderCallDuration.WithLabelValues(operation).Observe(duration)
}
