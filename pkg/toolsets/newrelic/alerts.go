package newrelic

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/sts1992/mcp/pkg/adapter"
	"github.com/sts1992/mcp/pkg/api"
	nr "github.com/sts1992/mcp/pkg/newrelic"
)

func (t *Toolset) alertTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "get_alert_policies",
				Description: "Get NewRelic alert policies",
				InputSchema: &jsonschema.Schema{
					Type: "object",
				},
			},
			Handler: t.getAlertPolicies,
		},
	}
}

func (t *Toolset) getAlertPolicies(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	var resp nr.AlertPoliciesResponse
	err := t.client.Execute(params.Context, nr.ListAlertPolicies, adapter.Params{}, &resp)

	outcome := adapter.Collect(resp.Policies, err)
	noteMissingKey(t.log, outcome, "get_alert_policies", "policies")

	return api.NewOutcomeResult(outcome, t.alertPoliciesView()), nil
}

func (t *Toolset) alertPoliciesView() adapter.View[nr.AlertPolicy] {
	return adapter.View[nr.AlertPolicy]{
		Action: "getting alert policies",
		Verb:   "get alert policies",
		Empty:  "No alert policies found.",
		Render: func(policies []nr.AlertPolicy) string {
			records := make([]adapter.Record, 0, len(policies))
			for _, policy := range policies {
				records = append(records, adapter.Record{
					Title: adapter.Value(policy.Name, "Unknown"),
					Note:  "ID: " + adapter.Value(policy.ID, adapter.Placeholder),
					Fields: []adapter.Field{
						{Label: "Incident Preference", Value: adapter.Value(policy.IncidentPreference, adapter.Placeholder)},
						{Label: "Created", Value: t.timestamp(policy.CreatedAt)},
						{Label: "Updated", Value: t.timestamp(policy.UpdatedAt)},
					},
				})
			}
			return adapter.RenderBlocks(adapter.Header(len(policies), "alert policies"), records)
		},
	}
}

// timestamp renders an epoch (seconds or milliseconds) in the toolset's zone; ISO strings pass through
func (t *Toolset) timestamp(v *nr.Scalar) string {
	if v == nil {
		return adapter.Placeholder
	}
	return adapter.Timestamp(string(*v), t.location)
}
