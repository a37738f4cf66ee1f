package newrelic

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/sts1992/mcp/pkg/adapter"
	"github.com/sts1992/mcp/pkg/api"
	nr "github.com/sts1992/mcp/pkg/newrelic"
)

func (t *Toolset) applicationTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "list_applications",
				Description: "List NewRelic applications with health, reporting status, language and performance summary",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"filter_name": {
							Type:        "string",
							Description: "Filter applications by name (partial match)",
						},
						"filter_language": {
							Type:        "string",
							Description: "Filter applications by language (e.g., python, java, ruby)",
						},
					},
				},
			},
			Handler: t.listApplications,
		},
		{
			Tool: api.Tool{
				Name:        "get_application",
				Description: "Get detailed information about a specific NewRelic application",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"app_id": {
							Type:        "integer",
							Description: "NewRelic application ID",
						},
					},
					Required: []string{"app_id"},
				},
			},
			Handler: t.getApplication,
		},
	}
}

func (t *Toolset) listApplications(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	query := adapter.Params{}
	if name := params.GetString("filter_name", ""); name != "" {
		query.Set("filter[name]", name)
	}
	if language := params.GetString("filter_language", ""); language != "" {
		query.Set("filter[language]", language)
	}

	var resp nr.ApplicationsResponse
	err := t.client.Execute(params.Context, nr.ListApplications, query, &resp)

	outcome := adapter.Collect(resp.Applications, err)
	noteMissingKey(t.log, outcome, "list_applications", "applications")

	return api.NewOutcomeResult(outcome, applicationsView), nil
}

var applicationsView = adapter.View[nr.Application]{
	Action: "listing applications",
	Verb:   "list applications",
	Empty:  "No applications found matching the criteria.",
	Render: func(apps []nr.Application) string {
		records := make([]adapter.Record, 0, len(apps))
		for _, app := range apps {
			summary := app.ApplicationSummary
			if summary == nil {
				summary = &nr.ApplicationSummary{}
			}

			records = append(records, adapter.Record{
				Title: adapter.Value(app.Name, "Unknown"),
				Note:  "ID: " + adapter.Value(app.ID, adapter.Placeholder),
				Fields: []adapter.Field{
					{Label: "Health", Value: adapter.Value(app.HealthStatus, "unknown")},
					{Label: "Reporting", Value: adapter.Check(app.Reporting)},
					{Label: "Language", Value: adapter.Value(app.Language, adapter.Placeholder)},
					{Label: "Response Time", Value: adapter.Unit(summary.ResponseTime, "ms")},
					{Label: "Throughput", Value: adapter.Unit(summary.Throughput, " rpm")},
					{Label: "Error Rate", Value: adapter.Unit(summary.ErrorRate, "%")},
				},
			})
		}
		return adapter.RenderBlocks(adapter.Header(len(apps), "applications"), records)
	},
}

func (t *Toolset) getApplication(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	appID, _ := params.Lookup("app_id")

	var resp nr.ApplicationResponse
	err := t.client.Execute(params.Context, nr.GetApplication, adapter.Params{"app_id": {appID}}, &resp)

	outcome := adapter.Single(resp.Record(), err)

	view := adapter.View[nr.Application]{
		Action: "getting application details",
		Verb:   "get application details",
		Empty:  fmt.Sprintf("Application with ID %s not found.", appID),
		Render: func(apps []nr.Application) string {
			return renderApplication(apps[0])
		},
	}
	return api.NewOutcomeResult(outcome, view), nil
}

func renderApplication(app nr.Application) string {
	summary := app.ApplicationSummary
	if summary == nil {
		summary = &nr.ApplicationSummary{}
	}
	endUser := app.EndUserSummary
	if endUser == nil {
		endUser = &nr.EndUserSummary{}
	}
	settings := app.Settings
	if settings == nil {
		settings = &nr.ApplicationSettings{}
	}

	fields := []adapter.Field{
		{Label: "ID", Value: adapter.Value(app.ID, adapter.Placeholder)},
		{Label: "Health Status", Value: adapter.Value(app.HealthStatus, "unknown")},
		{Label: "Reporting", Value: adapter.YesNo(app.Reporting)},
		{Label: "Language", Value: adapter.Value(app.Language, adapter.Placeholder)},
		{Label: "Last Reported", Value: adapter.Value(app.LastReportedAt, adapter.Placeholder)},
	}

	sections := []adapter.Section{
		{
			Heading: "Performance Summary",
			Fields: []adapter.Field{
				{Label: "Response Time", Value: adapter.Unit(summary.ResponseTime, "ms")},
				{Label: "Throughput", Value: adapter.Unit(summary.Throughput, " rpm")},
				{Label: "Error Rate", Value: adapter.Unit(summary.ErrorRate, "%")},
				{Label: "Apdex Score", Value: adapter.Value(summary.ApdexScore, adapter.Placeholder)},
			},
		},
		{
			Heading: "End User Summary",
			Fields: []adapter.Field{
				{Label: "Response Time", Value: adapter.Unit(endUser.ResponseTime, "ms")},
				{Label: "Throughput", Value: adapter.Unit(endUser.Throughput, " rpm")},
				{Label: "Apdex Score", Value: adapter.Value(endUser.ApdexScore, adapter.Placeholder)},
			},
		},
		{
			Heading: "Settings",
			Fields: []adapter.Field{
				{Label: "App Apdex Threshold", Value: adapter.Unit(settings.AppApdexThreshold, "s")},
				{Label: "End User Apdex Threshold", Value: adapter.Unit(settings.EndUserApdexThreshold, "s")},
				{Label: "Enable Real User Monitoring", Value: adapter.YesNo(settings.EnableRealUserMonitoring)},
			},
		},
	}

	title := "Application Details: " + adapter.Value(app.Name, "Unknown")
	return adapter.RenderDetail(title, fields, sections)
}
