package newrelic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sts1992/mcp/pkg/adapter"
	"github.com/sts1992/mcp/pkg/config"
	"github.com/sts1992/mcp/pkg/metrics"
)

const baseURL = "https://api.newrelic.com/v2"

func newTestClient(t *testing.T, apiKey string, opts ...Option) (*Client, *httpmock.MockTransport) {
	t.Helper()
	mock := httpmock.NewMockTransport()
	cfg := config.NewRelic{APIKey: apiKey, BaseURL: baseURL, Timeout: time.Second}
	return NewClient(cfg, append([]Option{WithTransport(mock)}, opts...)...), mock
}

func TestExecuteWithoutKeyMakesNoRequest(t *testing.T) {
	client, mock := newTestClient(t, "")
	mock.RegisterResponder(http.MethodGet, baseURL+"/servers.json",
		httpmock.NewStringResponder(http.StatusOK, `{"servers":[]}`))

	var resp ServersResponse
	err := client.Execute(context.Background(), ListServers, url.Values{}, &resp)

	var configErr *adapter.ConfigurationError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, MissingKeyMessage, err.Error())
	assert.False(t, client.Configured())
	assert.Equal(t, 0, mock.GetTotalCallCount())
}

func TestExecuteSendsHeadersAndQuery(t *testing.T) {
	client, mock := newTestClient(t, "nr-key")

	var got *http.Request
	mock.RegisterResponder(http.MethodGet, baseURL+"/applications.json",
		func(req *http.Request) (*http.Response, error) {
			got = req
			return httpmock.NewStringResponse(http.StatusOK, `{"applications":[{"id":1,"name":"web"}]}`), nil
		})

	params := url.Values{}
	params.Set("filter[name]", "web")

	var resp ApplicationsResponse
	require.NoError(t, client.Execute(context.Background(), ListApplications, params, &resp))

	require.NotNil(t, got)
	assert.Equal(t, "nr-key", got.Header.Get("X-Api-Key"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "web", got.URL.Query().Get("filter[name]"))

	require.NotNil(t, resp.Applications)
	require.Len(t, *resp.Applications, 1)
	assert.Equal(t, "web", *(*resp.Applications)[0].Name)
	assert.Equal(t, 1, mock.GetTotalCallCount())
}

func TestExecuteExpandsPath(t *testing.T) {
	client, mock := newTestClient(t, "nr-key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/applications/42/metrics/data.json",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, []string{"Apdex", "HttpDispatcher"}, req.URL.Query()["names[]"])
			return httpmock.NewStringResponse(http.StatusOK, `{"metric_data":{"metrics":[]}}`), nil
		})

	params := url.Values{"app_id": {"42"}, "names[]": {"Apdex", "HttpDispatcher"}}
	var resp MetricDataResponse
	require.NoError(t, client.Execute(context.Background(), ApplicationMetrics, params, &resp))
	assert.NotNil(t, resp.MetricData)
}

func TestExecuteInvalidArgumentMakesNoRequest(t *testing.T) {
	client, mock := newTestClient(t, "nr-key")

	var resp ApplicationResponse
	err := client.Execute(context.Background(), GetApplication, url.Values{}, &resp)

	var argErr *adapter.InvalidArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "app_id", argErr.Param)
	assert.Equal(t, 0, mock.GetTotalCallCount())
}

func TestExecuteNon2xxIsTransportError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New("newrelic", reg)
	client, mock := newTestClient(t, "nr-key", WithMetrics(m))
	mock.RegisterResponder(http.MethodGet, baseURL+"/applications/7.json",
		httpmock.NewStringResponder(http.StatusNotFound, `{"error":{"title":"Not found"}}`))

	var resp ApplicationResponse
	err := client.Execute(context.Background(), GetApplication, url.Values{"app_id": {"7"}}, &resp)

	var transportErr *adapter.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Contains(t, err.Error(), "NewRelic API request failed")
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, 1, mock.GetTotalCallCount())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("get_application", "404")))
}

func TestExecuteNetworkErrorIsNotRetried(t *testing.T) {
	client, mock := newTestClient(t, "nr-key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/servers.json",
		httpmock.NewErrorResponder(errors.New("i/o timeout")))

	var resp ServersResponse
	err := client.Execute(context.Background(), ListServers, url.Values{}, &resp)

	assert.Equal(t, adapter.KindTransportFailure, adapter.Classify(err))
	assert.Contains(t, err.Error(), "i/o timeout")
	assert.Equal(t, 1, mock.GetTotalCallCount())
}

func TestExecuteInvalidBody(t *testing.T) {
	client, mock := newTestClient(t, "nr-key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/servers.json",
		httpmock.NewStringResponder(http.StatusOK, `<html>`))

	var resp ServersResponse
	err := client.Execute(context.Background(), ListServers, url.Values{}, &resp)
	assert.ErrorContains(t, err, "invalid response body")
}

func TestScalarUnmarshal(t *testing.T) {
	var policy AlertPolicy
	require.NoError(t, json.Unmarshal([]byte(`{"created_at":1500000000000,"updated_at":"2024-01-01T00:00:00+00:00"}`), &policy))
	assert.Equal(t, Scalar("1500000000000"), *policy.CreatedAt)
	assert.Equal(t, Scalar("2024-01-01T00:00:00+00:00"), *policy.UpdatedAt)
}
