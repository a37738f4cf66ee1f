package slack

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/sts1992/mcp/pkg/api"
	"github.com/sts1992/mcp/pkg/slackapi"
)

// API is the subset of the Slack client the tools call. *slackapi.Client implements it.
type API interface {
	PostMessage(ctx context.Context, channel, text, threadTS string) (*slackapi.PostedMessage, error)
	ListChannels(ctx context.Context, types string) ([]slackapi.Channel, error)
	ChannelHistory(ctx context.Context, channel string, limit int, oldest string) ([]slackapi.Message, error)
	UserInfo(ctx context.Context, userID string) (*slackapi.User, error)
	SearchMessages(ctx context.Context, query string, count int) ([]slackapi.SearchMatch, error)
}

// Toolset exposes Slack messaging operations as tools
type Toolset struct {
	client   API
	log      logr.Logger
	location *time.Location
}

// Option configures the toolset
type Option func(*Toolset)

// WithLogger sets the logger
func WithLogger(log logr.Logger) Option {
	return func(t *Toolset) {
		t.log = log
	}
}

// WithLocation sets the zone message timestamps are rendered in
func WithLocation(loc *time.Location) Option {
	return func(t *Toolset) {
		t.location = loc
	}
}

// New creates the toolset around client
func New(client API, opts ...Option) *Toolset {
	t := &Toolset{
		client:   client,
		log:      logr.Discard(),
		location: time.Local,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Toolset) Name() string {
	return "slack"
}

func (t *Toolset) Description() string {
	return "Tools for sending messages, listing channels, reading history, looking up users and searching messages in Slack"
}

func (t *Toolset) GetTools() []api.ServerTool {
	tools := []api.ServerTool{}
	tools = append(tools, t.messageTools()...)
	tools = append(tools, t.channelTools()...)
	tools = append(tools, t.userTools()...)
	return tools
}
