package newrelic

import (
	"net/http"

	"github.com/sts1992/mcp/pkg/adapter"
)

// Endpoint descriptors of the REST v2 API
var (
	ListApplications = adapter.Endpoint{
		Name:     "list_applications",
		Method:   http.MethodGet,
		Path:     "/applications.json",
		Optional: []string{"filter[name]", "filter[language]"},
		Args:     map[string]string{"filter[name]": "filter_name", "filter[language]": "filter_language"},
	}

	GetApplication = adapter.Endpoint{
		Name:     "get_application",
		Method:   http.MethodGet,
		Path:     "/applications/{app_id}.json",
		Required: []string{"app_id"},
		Integers: []string{"app_id"},
	}

	ApplicationMetrics = adapter.Endpoint{
		Name:     "get_application_metrics",
		Method:   http.MethodGet,
		Path:     "/applications/{app_id}/metrics/data.json",
		Required: []string{"app_id", "names[]"},
		Optional: []string{"from", "to"},
		Integers: []string{"app_id"},
		Args:     map[string]string{"names[]": "metric_names", "from": "from_time", "to": "to_time"},
	}

	ListServers = adapter.Endpoint{
		Name:   "list_servers",
		Method: http.MethodGet,
		Path:   "/servers.json",
	}

	ListAlertPolicies = adapter.Endpoint{
		Name:   "get_alert_policies",
		Method: http.MethodGet,
		Path:   "/alert_policies.json",
	}
)
