package newrelic

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sts1992/mcp/pkg/api"
	"github.com/sts1992/mcp/pkg/config"
	nr "github.com/sts1992/mcp/pkg/newrelic"
)

const baseURL = "https://api.newrelic.com/v2"

type args map[string]any

func (a args) GetArguments() map[string]any {
	return a
}

func newTestToolset(t *testing.T, apiKey string) (*Toolset, *httpmock.MockTransport) {
	t.Helper()
	mock := httpmock.NewMockTransport()
	client := nr.NewClient(
		config.NewRelic{APIKey: apiKey, BaseURL: baseURL, Timeout: time.Second},
		nr.WithTransport(mock),
	)
	clock := func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return New(client, WithClock(clock), WithLocation(time.UTC)), mock
}

func call(t *testing.T, ts *Toolset, name string, arguments args) *api.ToolCallResult {
	t.Helper()
	for _, tool := range ts.GetTools() {
		if tool.Tool.Name == name {
			result, err := tool.Handler(api.ToolHandlerParams{Context: context.Background(), ToolCallRequest: arguments})
			require.NoError(t, err)
			require.NotNil(t, result)
			return result
		}
	}
	t.Fatalf("tool %s not registered", name)
	return nil
}

func TestToolNames(t *testing.T) {
	ts, _ := newTestToolset(t, "key")
	var names []string
	for _, tool := range ts.GetTools() {
		names = append(names, tool.Tool.Name)
		assert.NotNil(t, tool.Tool.InputSchema, tool.Tool.Name)
	}
	assert.Equal(t, []string{
		"list_applications",
		"get_application",
		"get_application_metrics",
		"list_servers",
		"get_alert_policies",
	}, names)
}

func TestToolsWithoutKey(t *testing.T) {
	ts, mock := newTestToolset(t, "")
	calls := map[string]args{
		"list_applications":       {},
		"get_application":         {"app_id": float64(1)},
		"get_application_metrics": {"app_id": float64(1), "metric_names": "Apdex"},
		"list_servers":            {},
		"get_alert_policies":      {},
	}
	for name, arguments := range calls {
		result := call(t, ts, name, arguments)
		assert.True(t, result.IsError, name)
		assert.Equal(t, nr.MissingKeyMessage, result.Content, name)
	}
	assert.Equal(t, 0, mock.GetTotalCallCount())
}

func TestListApplications(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/applications.json",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "python", req.URL.Query().Get("filter[language]"))
			return httpmock.NewStringResponse(http.StatusOK, `{"applications":[
				{"id":1,"name":"web","language":"python","health_status":"green","reporting":true,
				 "application_summary":{"response_time":120.5,"throughput":300,"error_rate":0.2}},
				{"id":2,"name":"worker"}
			]}`), nil
		})

	result := call(t, ts, "list_applications", args{"filter_language": "python"})
	assert.False(t, result.IsError)

	expected := "Found 2 applications:\n\n" +
		"• **web** (ID: 1)\n" +
		"  - Health: green\n" +
		"  - Reporting: ✓\n" +
		"  - Language: python\n" +
		"  - Response Time: 120.5ms\n" +
		"  - Throughput: 300 rpm\n" +
		"  - Error Rate: 0.2%\n" +
		"\n" +
		"• **worker** (ID: 2)\n" +
		"  - Health: unknown\n" +
		"  - Reporting: ✗\n" +
		"  - Language: N/A\n" +
		"  - Response Time: N/A\n" +
		"  - Throughput: N/A\n" +
		"  - Error Rate: N/A\n" +
		"\n"
	assert.Equal(t, expected, result.Content)

	again := call(t, ts, "list_applications", args{"filter_language": "python"})
	assert.Equal(t, result.Content, again.Content)
}

func TestListApplicationsEmptyAndMissingKey(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/applications.json",
		httpmock.NewStringResponder(http.StatusOK, `{"applications":[]}`))

	result := call(t, ts, "list_applications", args{})
	assert.False(t, result.IsError)
	assert.Equal(t, "No applications found matching the criteria.", result.Content)

	mock.RegisterResponder(http.MethodGet, baseURL+"/applications.json",
		httpmock.NewStringResponder(http.StatusOK, `{"links":{}}`))

	result = call(t, ts, "list_applications", args{})
	assert.False(t, result.IsError)
	assert.Equal(t, "No applications found matching the criteria.", result.Content)
}

func TestListApplicationsTransportError(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/applications.json",
		httpmock.NewStringResponder(http.StatusUnauthorized, `{"error":{"title":"Invalid API key"}}`))

	result := call(t, ts, "list_applications", args{})
	assert.True(t, result.IsError)
	assert.True(t, strings.HasPrefix(result.Content, "Error listing applications: NewRelic API request failed: "))
	assert.Contains(t, result.Content, "401")
	assert.Equal(t, 1, mock.GetTotalCallCount())
}

func TestListServersTimeoutIsIdempotent(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/servers.json",
		httpmock.NewErrorResponder(errors.New("i/o timeout")))

	first := call(t, ts, "list_servers", args{})
	second := call(t, ts, "list_servers", args{})

	assert.True(t, first.IsError)
	assert.True(t, strings.HasPrefix(first.Content, "Error listing servers: NewRelic API request failed: "))
	assert.Contains(t, first.Content, "i/o timeout")
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, 2, mock.GetTotalCallCount())
}

func TestGetApplication(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/applications/42.json",
		httpmock.NewStringResponder(http.StatusOK, `{"application":{
			"id":42,"name":"checkout","language":"java","health_status":"orange","reporting":true,
			"last_reported_at":"2024-03-01T11:59:00+00:00",
			"application_summary":{"response_time":80,"throughput":12,"error_rate":1.5,"apdex_score":0.93},
			"settings":{"app_apdex_threshold":0.5,"enable_real_user_monitoring":true}
		}}`))

	result := call(t, ts, "get_application", args{"app_id": float64(42)})
	assert.False(t, result.IsError)

	expected := "**Application Details: checkout**\n\n" +
		"- **ID**: 42\n" +
		"- **Health Status**: orange\n" +
		"- **Reporting**: Yes\n" +
		"- **Language**: java\n" +
		"- **Last Reported**: 2024-03-01T11:59:00+00:00\n" +
		"\n**Performance Summary:**\n" +
		"- Response Time: 80ms\n" +
		"- Throughput: 12 rpm\n" +
		"- Error Rate: 1.5%\n" +
		"- Apdex Score: 0.93\n" +
		"\n**End User Summary:**\n" +
		"- Response Time: N/A\n" +
		"- Throughput: N/A\n" +
		"- Apdex Score: N/A\n" +
		"\n**Settings:**\n" +
		"- App Apdex Threshold: 0.5s\n" +
		"- End User Apdex Threshold: N/A\n" +
		"- Enable Real User Monitoring: Yes\n"
	assert.Equal(t, expected, result.Content)
}

func TestGetApplicationNotFoundKey(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/applications/7.json",
		httpmock.NewStringResponder(http.StatusOK, `{}`))

	result := call(t, ts, "get_application", args{"app_id": "7"})
	assert.False(t, result.IsError)
	assert.Equal(t, "Application with ID 7 not found.", result.Content)
}

func TestGetApplicationEmptyObject(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/applications/7.json",
		httpmock.NewStringResponder(http.StatusOK, `{"application":{}}`))

	result := call(t, ts, "get_application", args{"app_id": float64(7)})
	assert.False(t, result.IsError)
	assert.Equal(t, "Application with ID 7 not found.", result.Content)
}

func TestGetApplicationInvalidArgument(t *testing.T) {
	ts, mock := newTestToolset(t, "key")

	result := call(t, ts, "get_application", args{})
	assert.True(t, result.IsError)
	assert.Equal(t, `Error getting application details: missing required parameter "app_id"`, result.Content)

	result = call(t, ts, "get_application", args{"app_id": "abc"})
	assert.True(t, result.IsError)
	assert.Equal(t, `Error getting application details: invalid parameter "app_id": must be an integer`, result.Content)

	assert.Equal(t, 0, mock.GetTotalCallCount())
}

func TestGetApplicationMetrics(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/applications/42/metrics/data.json",
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, []string{"HttpDispatcher", "Apdex"}, q["names[]"])
			assert.Equal(t, "2024-03-01T11:30:00", q.Get("from"))
			assert.Equal(t, "2024-03-01T12:00:00", q.Get("to"))
			return httpmock.NewStringResponse(http.StatusOK, `{"metric_data":{"metrics":[
				{"name":"HttpDispatcher","timeslices":[
					{"from":"2024-03-01T11:30:00+00:00","to":"2024-03-01T11:31:00+00:00",
					 "values":{"call_count":10,"average_response_time":12.5}}
				]}
			]}}`), nil
		})

	result := call(t, ts, "get_application_metrics", args{"app_id": float64(42), "metric_names": "HttpDispatcher, Apdex"})
	assert.False(t, result.IsError)

	expected := "**Metrics for Application ID 42**\n" +
		"Time Range: 2024-03-01T11:30:00 to 2024-03-01T12:00:00\n\n" +
		"**HttpDispatcher**\n" +
		"  Period: 2024-03-01T11:30:00+00:00 to 2024-03-01T11:31:00+00:00\n" +
		"    average_response_time: 12.5\n" +
		"    call_count: 10\n" +
		"\n"
	assert.Equal(t, expected, result.Content)
}

func TestGetApplicationMetricsExplicitRangeAndEmpty(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/applications/42/metrics/data.json",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "2024-01-01T00:00:00", req.URL.Query().Get("from"))
			assert.Equal(t, "2024-01-02T00:00:00", req.URL.Query().Get("to"))
			return httpmock.NewStringResponse(http.StatusOK, `{"metric_data":{"metrics":[]}}`), nil
		})

	result := call(t, ts, "get_application_metrics", args{
		"app_id":       "42",
		"metric_names": "Apdex",
		"from_time":    "2024-01-01T00:00:00",
		"to_time":      "2024-01-02T00:00:00",
	})
	assert.False(t, result.IsError)
	assert.Equal(t, "No metric data found for application 42.", result.Content)
}

func TestGetApplicationMetricsRequiresNames(t *testing.T) {
	ts, mock := newTestToolset(t, "key")

	result := call(t, ts, "get_application_metrics", args{"app_id": float64(42), "metric_names": " , "})
	assert.True(t, result.IsError)
	assert.Equal(t, `Error getting application metrics: missing required parameter "metric_names"`, result.Content)
	assert.Equal(t, 0, mock.GetTotalCallCount())
}

func TestListServers(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/servers.json",
		httpmock.NewStringResponder(http.StatusOK, `{"servers":[
			{"id":5,"name":"db-1","host":"db-1.internal","health_status":"green","reporting":true,
			 "summary":{"cpu":12.3,"memory":45,"disk_io":0.5}}
		]}`))

	result := call(t, ts, "list_servers", args{})
	assert.False(t, result.IsError)

	expected := "Found 1 servers:\n\n" +
		"• **db-1** (ID: 5)\n" +
		"  - Health: green\n" +
		"  - Reporting: ✓\n" +
		"  - Host: db-1.internal\n" +
		"  - CPU: 12.3%\n" +
		"  - Memory: 45%\n" +
		"  - Disk I/O: 0.5%\n" +
		"\n"
	assert.Equal(t, expected, result.Content)
}

func TestListServersEmpty(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/servers.json",
		httpmock.NewStringResponder(http.StatusOK, `{"servers":[]}`))

	result := call(t, ts, "list_servers", args{})
	assert.False(t, result.IsError)
	assert.Equal(t, "No servers found.", result.Content)
}

func TestGetAlertPolicies(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/alert_policies.json",
		httpmock.NewStringResponder(http.StatusOK, `{"policies":[
			{"id":9,"name":"Golden signals","incident_preference":"PER_POLICY","created_at":1450298220000,"updated_at":1450298220},
			{"id":10,"created_at":"2015-12-16T20:37:00+00:00"}
		]}`))

	result := call(t, ts, "get_alert_policies", args{})
	assert.False(t, result.IsError)

	expected := "Found 2 alert policies:\n\n" +
		"• **Golden signals** (ID: 9)\n" +
		"  - Incident Preference: PER_POLICY\n" +
		"  - Created: 2015-12-16 20:37:00\n" +
		"  - Updated: 2015-12-16 20:37:00\n" +
		"\n" +
		"• **Unknown** (ID: 10)\n" +
		"  - Incident Preference: N/A\n" +
		"  - Created: 2015-12-16T20:37:00+00:00\n" +
		"  - Updated: N/A\n" +
		"\n"
	assert.Equal(t, expected, result.Content)
}

func TestGetAlertPoliciesEmpty(t *testing.T) {
	ts, mock := newTestToolset(t, "key")
	mock.RegisterResponder(http.MethodGet, baseURL+"/alert_policies.json",
		httpmock.NewStringResponder(http.StatusOK, `{"policies":[]}`))

	result := call(t, ts, "get_alert_policies", args{})
	assert.False(t, result.IsError)
	assert.Equal(t, "No alert policies found.", result.Content)
}
