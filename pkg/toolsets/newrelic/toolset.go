package newrelic

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/sts1992/mcp/pkg/adapter"
	"github.com/sts1992/mcp/pkg/api"
)

// Executor performs one NewRelic API request. *newrelic.Client implements it.
type Executor interface {
	Execute(ctx context.Context, ep adapter.Endpoint, params adapter.Params, result any) error
}

// Toolset exposes NewRelic monitoring data as tools
type Toolset struct {
	client   Executor
	log      logr.Logger
	now      func() time.Time
	location *time.Location
}

// Option configures the toolset
type Option func(*Toolset)

// WithLogger sets the logger
func WithLogger(log logr.Logger) Option {
	return func(t *Toolset) {
		t.log = log
	}
}

// WithClock overrides the clock used for default metric time ranges
func WithClock(now func() time.Time) Option {
	return func(t *Toolset) {
		t.now = now
	}
}

// WithLocation sets the zone epoch timestamps are rendered in
func WithLocation(loc *time.Location) Option {
	return func(t *Toolset) {
		t.location = loc
	}
}

// New creates the toolset around client
func New(client Executor, opts ...Option) *Toolset {
	t := &Toolset{
		client:   client,
		log:      logr.Discard(),
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Toolset) Name() string {
	return "newrelic"
}

func (t *Toolset) Description() string {
	return "Tools for retrieving application, metric, server and alert policy data from NewRelic"
}

func (t *Toolset) GetTools() []api.ServerTool {
	tools := []api.ServerTool{}
	tools = append(tools, t.applicationTools()...)
	tools = append(tools, t.metricTools()...)
	tools = append(tools, t.serverTools()...)
	tools = append(tools, t.alertTools()...)
	return tools
}

// noteMissingKey logs responses that lacked their collection key, which usually means an upstream schema change
func noteMissingKey[T any](log logr.Logger, o adapter.Outcome[T], tool, key string) {
	if o.KeyMissing {
		log.Info("response missing expected key, treating as empty result", "tool", tool, "key", key)
	}
}
