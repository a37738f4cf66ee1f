package newrelic

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/sts1992/mcp/pkg/adapter"
	"github.com/sts1992/mcp/pkg/api"
	nr "github.com/sts1992/mcp/pkg/newrelic"
)

// defaultMetricWindow is the trailing window queried when no range is given
const defaultMetricWindow = 30 * time.Minute

// isoLayout matches the ISO timestamps the API accepts for from/to
const isoLayout = "2006-01-02T15:04:05"

func (t *Toolset) metricTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "get_application_metrics",
				Description: "Get metric timeslice data for a specific NewRelic application (default: the last 30 minutes)",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"app_id": {
							Type:        "integer",
							Description: "NewRelic application ID",
						},
						"metric_names": {
							Type:        "string",
							Description: "Comma-separated list of metric names (e.g., \"HttpDispatcher,Apdex\")",
						},
						"from_time": {
							Type:        "string",
							Description: "Start time in ISO format (default: 30 minutes ago)",
						},
						"to_time": {
							Type:        "string",
							Description: "End time in ISO format (default: now)",
						},
					},
					Required: []string{"app_id", "metric_names"},
				},
			},
			Handler: t.getApplicationMetrics,
		},
	}
}

func (t *Toolset) getApplicationMetrics(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	appID, _ := params.Lookup("app_id")

	query := adapter.Params{"app_id": {appID}}
	for _, name := range strings.Split(params.GetString("metric_names", ""), ",") {
		if name = strings.TrimSpace(name); name != "" {
			query.Add("names[]", name)
		}
	}

	// Default to the trailing window ending now
	now := t.now().UTC()
	from := params.GetString("from_time", "")
	if from == "" {
		from = now.Add(-defaultMetricWindow).Format(isoLayout)
	}
	to := params.GetString("to_time", "")
	if to == "" {
		to = now.Format(isoLayout)
	}
	query.Set("from", from)
	query.Set("to", to)

	var resp nr.MetricDataResponse
	err := t.client.Execute(params.Context, nr.ApplicationMetrics, query, &resp)

	var metrics *[]nr.Metric
	if resp.MetricData != nil {
		metrics = &resp.MetricData.Metrics
	}
	outcome := adapter.Collect(metrics, err)
	noteMissingKey(t.log, outcome, "get_application_metrics", "metric_data")

	view := adapter.View[nr.Metric]{
		Action: "getting application metrics",
		Verb:   "get application metrics",
		Empty:  fmt.Sprintf("No metric data found for application %s.", appID),
		Render: func(metrics []nr.Metric) string {
			header := fmt.Sprintf("**Metrics for Application ID %s**\nTime Range: %s to %s", appID, from, to)
			return adapter.RenderOutline(header, metricNodes(metrics))
		},
	}
	return api.NewOutcomeResult(outcome, view), nil
}

func metricNodes(metrics []nr.Metric) []adapter.Node {
	nodes := make([]adapter.Node, 0, len(metrics))
	for _, metric := range metrics {
		node := adapter.Node{Text: "**" + adapter.Value(metric.Name, "Unknown Metric") + "**"}

		for _, slice := range metric.Timeslices {
			// Sort value names so output is stable
			keys := make([]string, 0, len(slice.Values))
			for k := range slice.Values {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			values := make([]adapter.Node, 0, len(keys))
			for _, k := range keys {
				values = append(values, adapter.Node{Text: fmt.Sprintf("%s: %s", k, slice.Values[k])})
			}

			node.Children = append(node.Children, adapter.Node{
				Text:     fmt.Sprintf("Period: %s to %s", adapter.Value(slice.From, ""), adapter.Value(slice.To, "")),
				Children: values,
				Gap:      true,
			})
		}

		nodes = append(nodes, node)
	}
	return nodes
}
