package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector holds all Prometheus metrics for Hesabu.
// Uses a custom registry — no global state.
type MetricsCollector struct {
	Registry *prometheus.Registry

	// Routing metrics. The branch label is one of "pattern", "keyword",
	// "clarification", or "empty".
	RoutingQueriesTotal *prometheus.CounterVec
	RoutingDuration     *prometheus.HistogramVec
	RoutingSuggestions  prometheus.Histogram

	// Tool dispatch metrics.
	ToolCallsTotal   *prometheus.CounterVec
	ToolCallDuration *prometheus.HistogramVec

	// Operational HTTP metrics.
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// System metrics.
	ActiveRequests prometheus.Gauge
}

// NewMetricsCollector creates a MetricsCollector with all metrics registered
// on a custom prometheus.Registry.
func NewMetricsCollector() *MetricsCollector {
	reg := prometheus.NewRegistry()

	m := &MetricsCollector{
		Registry: reg,

		RoutingQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hesabu",
			Subsystem: "routing",
			Name:      "queries_total",
			Help:      "Total routed queries by terminal branch.",
		}, []string{"branch"}),

		RoutingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hesabu",
			Subsystem: "routing",
			Name:      "duration_seconds",
			Help:      "Routing pipeline duration in seconds.",
			Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
		}, []string{"branch"}),

		RoutingSuggestions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hesabu",
			Subsystem: "routing",
			Name:      "suggestions",
			Help:      "Suggestions returned per routed query.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		}),

		ToolCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hesabu",
			Subsystem: "tool",
			Name:      "calls_total",
			Help:      "Total tool calls dispatched.",
		}, []string{"tool", "status"}),

		ToolCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hesabu",
			Subsystem: "tool",
			Name:      "call_duration_seconds",
			Help:      "Tool call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hesabu",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		}, []string{"method", "path", "status_code"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hesabu",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		ActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hesabu",
			Name:      "active_requests",
			Help:      "Number of currently active requests.",
		}),
	}

	// Register all collectors.
	reg.MustRegister(
		m.RoutingQueriesTotal,
		m.RoutingDuration,
		m.RoutingSuggestions,
		m.ToolCallsTotal,
		m.ToolCallDuration,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ActiveRequests,
	)

	return m
}

// RecordToolCall records one dispatched tool call. Nil-safe.
func (m *MetricsCollector) RecordToolCall(tool, status string, seconds float64) {
	if m == nil {
		return
	}
	m.ToolCallsTotal.WithLabelValues(tool, status).Inc()
	m.ToolCallDuration.WithLabelValues(tool).Observe(seconds)
}
