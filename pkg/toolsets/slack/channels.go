package slack

import (
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/sts1992/mcp/pkg/adapter"
	"github.com/sts1992/mcp/pkg/api"
	"github.com/sts1992/mcp/pkg/slackapi"
)

func (t *Toolset) channelTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "list_channels",
				Description: "List non-archived Slack channels",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"types": {
							Type:        "string",
							Description: "Comma-separated channel types to include (public_channel, private_channel, mpim, im; default: public_channel,private_channel)",
						},
					},
				},
			},
			Handler: t.listChannels,
		},
	}
}

func (t *Toolset) listChannels(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	types := params.GetString("types", slackapi.DefaultChannelTypes)

	channels, err := t.client.ListChannels(params.Context, types)
	outcome := adapter.Collect(&channels, err)

	return api.NewOutcomeResult(outcome, channelsView), nil
}

var channelsView = adapter.View[slackapi.Channel]{
	Action: "listing channels",
	Verb:   "list channels",
	Empty:  "No channels found.",
	Render: func(channels []slackapi.Channel) string {
		lines := make([]string, 0, len(channels))
		for _, ch := range channels {
			visibility := "Public"
			if ch.IsPrivate {
				visibility = "Private"
			}
			lines = append(lines, fmt.Sprintf("- #%s (%s) - %s", ch.Name, ch.ID, visibility))
		}
		return adapter.Header(len(channels), "channels") + "\n" + strings.Join(lines, "\n")
	},
}
