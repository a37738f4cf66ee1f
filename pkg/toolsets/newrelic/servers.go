package newrelic

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/sts1992/mcp/pkg/adapter"
	"github.com/sts1992/mcp/pkg/api"
	nr "github.com/sts1992/mcp/pkg/newrelic"
)

func (t *Toolset) serverTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "list_servers",
				Description: "List NewRelic servers with health, reporting status and resource usage",
				InputSchema: &jsonschema.Schema{
					Type: "object",
				},
			},
			Handler: t.listServers,
		},
	}
}

func (t *Toolset) listServers(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	var resp nr.ServersResponse
	err := t.client.Execute(params.Context, nr.ListServers, adapter.Params{}, &resp)

	outcome := adapter.Collect(resp.Servers, err)
	noteMissingKey(t.log, outcome, "list_servers", "servers")

	return api.NewOutcomeResult(outcome, serversView), nil
}

var serversView = adapter.View[nr.Server]{
	Action: "listing servers",
	Verb:   "list servers",
	Empty:  "No servers found.",
	Render: func(servers []nr.Server) string {
		records := make([]adapter.Record, 0, len(servers))
		for _, server := range servers {
			summary := server.Summary
			if summary == nil {
				summary = &nr.ServerSummary{}
			}

			records = append(records, adapter.Record{
				Title: adapter.Value(server.Name, "Unknown"),
				Note:  "ID: " + adapter.Value(server.ID, adapter.Placeholder),
				Fields: []adapter.Field{
					{Label: "Health", Value: adapter.Value(server.HealthStatus, "unknown")},
					{Label: "Reporting", Value: adapter.Check(server.Reporting)},
					{Label: "Host", Value: adapter.Value(server.Host, adapter.Placeholder)},
					{Label: "CPU", Value: adapter.Unit(summary.CPU, "%")},
					{Label: "Memory", Value: adapter.Unit(summary.Memory, "%")},
					{Label: "Disk I/O", Value: adapter.Unit(summary.DiskIO, "%")},
				},
			})
		}
		return adapter.RenderBlocks(adapter.Header(len(servers), "servers"), records)
	},
}
