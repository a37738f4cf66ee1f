package slackapi

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/slack-go/slack"

	"github.com/sts1992/mcp/pkg/adapter"
	"github.com/sts1992/mcp/pkg/config"
	"github.com/sts1992/mcp/pkg/metrics"
)

// ServiceName prefixes transport error messages
const ServiceName = "Slack"

// MissingTokenMessage is returned by every tool while SLACK_BOT_TOKEN is unset
const MissingTokenMessage = "Slack client not initialized. Please set SLACK_BOT_TOKEN environment variable."

const (
	DefaultChannelTypes = "public_channel,private_channel"
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 1000
	DefaultSearchCount  = 20
	MaxSearchCount      = 100
)

// Client performs single Slack Web API calls through the SDK
type Client struct {
	api        *slack.Client
	credential adapter.Credential
	log        logr.Logger
	metrics    *metrics.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger
func WithLogger(log logr.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client. Without a token no SDK client is built and every call fails the guard.
func NewClient(cfg config.Slack, opts ...Option) *Client {
	c := &Client{
		credential: adapter.NewCredential(cfg.BotToken, MissingTokenMessage),
		log:        logr.Discard(),
		metrics:    metrics.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.credential.Present() {
		c.api = slack.New(cfg.BotToken,
			slack.OptionAPIURL(cfg.APIURL),
			slack.OptionHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		)
	}

	return c
}

// Configured reports whether a bot token is present
func (c *Client) Configured() bool {
	return c.api != nil
}

// prepare runs the guard and parameter validation ahead of an SDK call
func (c *Client) prepare(ep adapter.Endpoint, params adapter.Params) error {
	if c.api == nil {
		return c.credential.Ensure()
	}
	if err := ep.Validate(params); err != nil {
		return err
	}
	c.log.V(1).Info("slack request", "endpoint", ep.Name, "method", ep.Path)
	return nil
}

// translate maps an SDK error onto the adapter taxonomy. ok:false responses become application errors.
func (c *Client) translate(ep adapter.Endpoint, err error) error {
	if err == nil {
		c.metrics.UpstreamRequests.WithLabelValues(ep.Name, "ok").Inc()
		return nil
	}

	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) {
		c.metrics.UpstreamRequests.WithLabelValues(ep.Name, "not_ok").Inc()
		return &adapter.ApplicationError{Message: slackErr.Err}
	}

	c.metrics.UpstreamRequests.WithLabelValues(ep.Name, "error").Inc()
	return &adapter.TransportError{Service: ServiceName, Cause: err}
}

// PostMessage posts text to channel, optionally as a reply in the thread rooted at threadTS
func (c *Client) PostMessage(ctx context.Context, channel, text, threadTS string) (*PostedMessage, error) {
	params := adapter.Params{"channel": {channel}, "text": {text}}
	if err := c.prepare(PostMessage, params); err != nil {
		return nil, err
	}

	options := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		options = append(options, slack.MsgOptionTS(threadTS))
	}

	respChannel, ts, err := c.api.PostMessageContext(ctx, channel, options...)
	if err := c.translate(PostMessage, err); err != nil {
		return nil, err
	}

	return &PostedMessage{Channel: respChannel, Timestamp: ts}, nil
}

// ListChannels lists non-archived conversations of the given comma-separated types
func (c *Client) ListChannels(ctx context.Context, types string) ([]Channel, error) {
	if strings.TrimSpace(types) == "" {
		types = DefaultChannelTypes
	}
	if err := c.prepare(ListConversations, adapter.Params{"types": {types}}); err != nil {
		return nil, err
	}

	channels, _, err := c.api.GetConversationsContext(ctx, &slack.GetConversationsParameters{
		Types:           splitList(types),
		ExcludeArchived: true,
	})
	if err := c.translate(ListConversations, err); err != nil {
		return nil, err
	}

	result := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		result = append(result, channelFromSDK(ch))
	}
	return result, nil
}

// ChannelHistory returns up to limit messages newer than oldest, oldest first
func (c *Client) ChannelHistory(ctx context.Context, channel string, limit int, oldest string) ([]Message, error) {
	limit = clamp(limit, DefaultHistoryLimit, MaxHistoryLimit)
	params := adapter.Params{"channel": {channel}, "limit": {strconv.Itoa(limit)}}
	if oldest != "" {
		params.Set("oldest", oldest)
	}
	if err := c.prepare(ConversationHistory, params); err != nil {
		return nil, err
	}

	resp, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channel,
		Limit:     limit,
		Oldest:    oldest,
	})
	if err := c.translate(ConversationHistory, err); err != nil {
		return nil, err
	}

	result := make([]Message, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		result = append(result, messageFromSDK(msg))
	}
	// Slack returns newest first
	slices.Reverse(result)
	return result, nil
}

// UserInfo fetches the profile of userID
func (c *Client) UserInfo(ctx context.Context, userID string) (*User, error) {
	if err := c.prepare(UsersInfo, adapter.Params{"user_id": {userID}}); err != nil {
		return nil, err
	}

	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err := c.translate(UsersInfo, err); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	u := userFromSDK(*user)
	return &u, nil
}

// SearchMessages runs a full-text search returning at most count matches
func (c *Client) SearchMessages(ctx context.Context, query string, count int) ([]SearchMatch, error) {
	count = clamp(count, DefaultSearchCount, MaxSearchCount)
	params := adapter.Params{"query": {query}, "count": {strconv.Itoa(count)}}
	if err := c.prepare(SearchMessages, params); err != nil {
		return nil, err
	}

	search := slack.NewSearchParameters()
	search.Count = count

	resp, err := c.api.SearchMessagesContext(ctx, query, search)
	if err := c.translate(SearchMessages, err); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	result := make([]SearchMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		result = append(result, SearchMatch{
			Channel:   m.Channel.Name,
			User:      m.User,
			Username:  m.Username,
			Text:      m.Text,
			Timestamp: m.Timestamp,
			Permalink: m.Permalink,
		})
	}
	return result, nil
}

// clamp applies the default when n is not positive and caps it at max
func clamp(n, def, max int) int {
	if n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
