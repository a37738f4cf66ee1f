package newrelic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-resty/resty/v2"

	"github.com/sts1992/mcp/pkg/adapter"
	"github.com/sts1992/mcp/pkg/config"
	"github.com/sts1992/mcp/pkg/metrics"
)

// ServiceName prefixes transport error messages
const ServiceName = "NewRelic"

// MissingKeyMessage is returned by every tool while NEWRELIC_API_KEY is unset
const MissingKeyMessage = "NewRelic API key not configured. Please set NEWRELIC_API_KEY environment variable."

// Client executes single-attempt requests against the NewRelic REST v2 API
type Client struct {
	rest       *resty.Client
	credential adapter.Credential
	log        logr.Logger
	metrics    *metrics.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithTransport replaces the HTTP transport, mostly for tests
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.rest.SetTransport(rt)
	}
}

// WithLogger sets the logger
func WithLogger(log logr.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client. A missing API key is not an error here; every call fails the guard instead.
func NewClient(cfg config.NewRelic, opts ...Option) *Client {
	c := &Client{
		rest:       resty.New(),
		credential: adapter.NewCredential(cfg.APIKey, MissingKeyMessage),
		log:        logr.Discard(),
		metrics:    metrics.Noop(),
	}

	c.rest.
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	for _, opt := range opts {
		opt(c)
	}
	c.rest.SetLogger(restyLogger{log: c.log})

	return c
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return c.credential.Present()
}

// Execute performs one request for ep and decodes the JSON body into result.
// Order: credential guard, parameter validation, a single network attempt.
func (c *Client) Execute(ctx context.Context, ep adapter.Endpoint, params adapter.Params, result any) error {
	if err := c.credential.Ensure(); err != nil {
		return err
	}
	if err := ep.Validate(params); err != nil {
		return err
	}

	path, query := ep.Expand(params)
	c.log.V(1).Info("newrelic request", "endpoint", ep.Name, "method", ep.Method, "path", path)

	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", c.credential.Value).
		SetQueryParamsFromValues(query).
		Execute(ep.Method, path)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(ep.Name, "error").Inc()
		return &adapter.TransportError{Service: ServiceName, Cause: err}
	}

	c.metrics.UpstreamRequests.WithLabelValues(ep.Name, strconv.Itoa(resp.StatusCode())).Inc()

	if !resp.IsSuccess() {
		return &adapter.TransportError{
			Service: ServiceName,
			Cause:   fmt.Errorf("%s for url: %s", resp.Status(), resp.Request.URL),
		}
	}

	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return &adapter.TransportError{
			Service: ServiceName,
			Cause:   fmt.Errorf("invalid response body: %w", err),
		}
	}

	return nil
}

// restyLogger routes resty's internal logging through logr
type restyLogger struct {
	log logr.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(fmt.Errorf(format, v...), "resty error")
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.V(1).Info(fmt.Sprintf(format, v...))
}
