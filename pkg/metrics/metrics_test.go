package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("newrelic", reg)

	m.ToolCalls.WithLabelValues("list_servers", "success").Inc()
	m.ToolCalls.WithLabelValues("list_servers", "success").Inc()
	m.UpstreamRequests.WithLabelValues("list_servers", "200").Inc()
	m.ToolDuration.WithLabelValues("list_servers").Observe(0.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("list_servers", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("list_servers", "200")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}

func TestNoopIsIndependent(t *testing.T) {
	a := Noop()
	b := Noop()
	a.ToolCalls.WithLabelValues("x", "success").Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ToolCalls.WithLabelValues("x", "success")))
}
