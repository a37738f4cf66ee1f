package slack

import (
	"fmt"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/sts1992/mcp/pkg/adapter"
	"github.com/sts1992/mcp/pkg/api"
	"github.com/sts1992/mcp/pkg/slackapi"
)

func (t *Toolset) userTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "get_user_info",
				Description: "Get profile information about a Slack user",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"user_id": {
							Type:        "string",
							Description: "Slack user ID",
						},
					},
					Required: []string{"user_id"},
				},
			},
			Handler: t.getUserInfo,
		},
	}
}

func (t *Toolset) getUserInfo(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	userID := params.GetString("user_id", "")

	user, err := t.client.UserInfo(params.Context, userID)
	outcome := adapter.Single(user, err)

	view := adapter.View[slackapi.User]{
		Action: "getting user info",
		Verb:   "get user info",
		Empty:  fmt.Sprintf("User %s not found.", userID),
		Render: func(users []slackapi.User) string {
			return adapter.RenderFields(userFields(users[0]))
		},
	}
	return api.NewOutcomeResult(outcome, view), nil
}

func userFields(u slackapi.User) []adapter.Field {
	return []adapter.Field{
		{Label: "User ID", Value: adapter.Text(u.ID, adapter.Placeholder)},
		{Label: "Name", Value: adapter.Text(u.Name, adapter.Placeholder)},
		{Label: "Real Name", Value: adapter.Text(u.RealName, adapter.Placeholder)},
		{Label: "Display Name", Value: adapter.Text(u.DisplayName, adapter.Placeholder)},
		{Label: "Email", Value: adapter.Text(u.Email, adapter.Placeholder)},
		{Label: "Title", Value: adapter.Text(u.Title, adapter.Placeholder)},
		{Label: "Status", Value: adapter.Text(u.StatusText, adapter.Placeholder)},
		{Label: "Timezone", Value: adapter.Text(u.Timezone, adapter.Placeholder)},
		{Label: "Is Admin", Value: strconv.FormatBool(u.IsAdmin)},
		{Label: "Is Bot", Value: strconv.FormatBool(u.IsBot)},
		{Label: "Is Deleted", Value: strconv.FormatBool(u.Deleted)},
	}
}
