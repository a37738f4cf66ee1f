package slack

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/sts1992/mcp/pkg/adapter"
	"github.com/sts1992/mcp/pkg/api"
	"github.com/sts1992/mcp/pkg/slackapi"
)

const (
	subtypeBotMessage = "bot_message"
	subtypeFileShare  = "file_share"
)

func (t *Toolset) messageTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "send_message",
				Description: "Send a message to a Slack channel, optionally as a reply in a thread",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"channel": {
							Type:        "string",
							Description: "Channel ID or name (e.g., #general or C1234567890)",
						},
						"text": {
							Type:        "string",
							Description: "Message text to send",
						},
						"thread_ts": {
							Type:        "string",
							Description: "Timestamp of the parent message to reply in thread",
						},
					},
					Required: []string{"channel", "text"},
				},
			},
			Handler: t.sendMessage,
		},
		{
			Tool: api.Tool{
				Name:        "get_channel_history",
				Description: "Get recent messages from a Slack channel, oldest first",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"channel": {
							Type:        "string",
							Description: "Channel ID",
						},
						"limit": {
							Type:        "integer",
							Description: "Number of messages to retrieve (default: 10, max: 1000)",
						},
						"oldest": {
							Type:        "string",
							Description: "Only messages after this Unix timestamp",
						},
					},
					Required: []string{"channel"},
				},
			},
			Handler: t.getChannelHistory,
		},
		{
			Tool: api.Tool{
				Name:        "search_messages",
				Description: "Search for messages across the Slack workspace",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"query": {
							Type:        "string",
							Description: "Search query",
						},
						"count": {
							Type:        "integer",
							Description: "Number of results to return (default: 20, max: 100)",
						},
					},
					Required: []string{"query"},
				},
			},
			Handler: t.searchMessages,
		},
	}
}

func (t *Toolset) sendMessage(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	channel := params.GetString("channel", "")
	text := params.GetString("text", "")
	threadTS := params.GetString("thread_ts", "")

	posted, err := t.client.PostMessage(params.Context, channel, text, threadTS)
	outcome := adapter.Single(posted, err)

	view := adapter.View[slackapi.PostedMessage]{
		Action: "sending message",
		Verb:   "send message",
		Empty:  "Failed to send message: Unknown error",
		Render: func(posted []slackapi.PostedMessage) string {
			return fmt.Sprintf("Message sent successfully to %s. Timestamp: %s", channel, posted[0].Timestamp)
		},
	}
	return api.NewOutcomeResult(outcome, view), nil
}

func (t *Toolset) getChannelHistory(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	channel := params.GetString("channel", "")
	oldest, _ := params.Lookup("oldest")

	view := adapter.View[slackapi.Message]{
		Action: "getting channel history",
		Verb:   "get channel history",
		Empty:  fmt.Sprintf("No messages found in %s", channel),
		Render: func(messages []slackapi.Message) string {
			lines := make([]string, 0, len(messages))
			for _, msg := range messages {
				user, text := messageAuthor(msg), messageText(msg)
				lines = append(lines, fmt.Sprintf("[%s] %s: %s", adapter.Timestamp(msg.Timestamp, t.location), user, text))
			}
			header := fmt.Sprintf("Message history for %s (%d messages):", channel, len(messages))
			return adapter.RenderLines(header, lines)
		},
	}

	limit, err := params.Int("limit", slackapi.DefaultHistoryLimit)
	if err != nil {
		return api.NewOutcomeResult(adapter.Fail[slackapi.Message](err), view), nil
	}

	messages, err := t.client.ChannelHistory(params.Context, channel, limit, oldest)
	return api.NewOutcomeResult(adapter.Collect(&messages, err), view), nil
}

func messageAuthor(msg slackapi.Message) string {
	if msg.SubType == subtypeBotMessage {
		return adapter.Text(msg.BotID, "Bot")
	}
	return adapter.Text(msg.User, "Unknown")
}

func messageText(msg slackapi.Message) string {
	if msg.SubType != subtypeFileShare {
		return msg.Text
	}
	name := "Unknown"
	if len(msg.Files) > 0 {
		name = adapter.Text(msg.Files[0], "Unknown")
	}
	return fmt.Sprintf("[File shared: %s]", name)
}

func (t *Toolset) searchMessages(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	query := params.GetString("query", "")

	view := adapter.View[slackapi.SearchMatch]{
		Action: "searching messages",
		Verb:   "search messages",
		Empty:  fmt.Sprintf("No messages found for query: '%s'", query),
		Render: func(matches []slackapi.SearchMatch) string {
			lines := make([]string, 0, len(matches))
			for _, m := range matches {
				lines = append(lines, fmt.Sprintf("[%s] #%s - %s: %s",
					adapter.Timestamp(m.Timestamp, t.location),
					adapter.Text(m.Channel, "Unknown"),
					adapter.Text(m.User, adapter.Text(m.Username, "Unknown")),
					m.Text,
				))
			}
			header := fmt.Sprintf("Search results for '%s' (%d matches):", query, len(matches))
			return adapter.RenderLines(header, lines)
		},
	}

	count, err := params.Int("count", slackapi.DefaultSearchCount)
	if err != nil {
		return api.NewOutcomeResult(adapter.Fail[slackapi.SearchMatch](err), view), nil
	}

	matches, err := t.client.SearchMessages(params.Context, query, count)
	return api.NewOutcomeResult(adapter.Collect(&matches, err), view), nil
}
