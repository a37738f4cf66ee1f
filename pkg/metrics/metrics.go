package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of one adapter server
type Metrics struct {
	// ToolCalls counts tool invocations by outcome kind
	ToolCalls *prometheus.CounterVec

	// ToolDuration is the histogram of tool call latency, upstream call included
	ToolDuration *prometheus.HistogramVec

	// UpstreamRequests counts outbound API calls by status
	UpstreamRequests *prometheus.CounterVec
}

// New creates the metrics and registers them with reg
func New(server string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"server": server}

	return &Metrics{
		ToolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "mcp_tool_calls_total",
			Help:        "Total number of tool calls",
			ConstLabels: labels,
		}, []string{"tool", "outcome"}),

		ToolDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "mcp_tool_call_duration_seconds",
			Help:        "Tool call duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"tool"}),

		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "mcp_upstream_requests_total",
			Help:        "Total number of upstream API requests",
			ConstLabels: labels,
		}, []string{"endpoint", "status"}), // status: HTTP code, error
	}
}

// Noop returns metrics registered on a throwaway registry
func Noop() *Metrics {
	return New("noop", prometheus.NewRegistry())
}
