package slackapi

import (
	"net/http"

	"github.com/slack-go/slack"

	"github.com/sts1992/mcp/pkg/adapter"
)

// Endpoint descriptors of the Web API methods in use
var (
	PostMessage = adapter.Endpoint{
		Name:     "send_message",
		Method:   http.MethodPost,
		Path:     "chat.postMessage",
		Required: []string{"channel", "text"},
		Optional: []string{"thread_ts"},
	}

	ListConversations = adapter.Endpoint{
		Name:     "list_channels",
		Method:   http.MethodPost,
		Path:     "conversations.list",
		Optional: []string{"types"},
	}

	ConversationHistory = adapter.Endpoint{
		Name:     "get_channel_history",
		Method:   http.MethodPost,
		Path:     "conversations.history",
		Required: []string{"channel"},
		Optional: []string{"limit", "oldest"},
	}

	UsersInfo = adapter.Endpoint{
		Name:     "get_user_info",
		Method:   http.MethodPost,
		Path:     "users.info",
		Required: []string{"user_id"},
	}

	SearchMessages = adapter.Endpoint{
		Name:     "search_messages",
		Method:   http.MethodPost,
		Path:     "search.messages",
		Required: []string{"query"},
		Optional: []string{"count"},
	}
)

// PostedMessage identifies a message that was just posted
type PostedMessage struct {
	Channel   string
	Timestamp string
}

// Channel is a conversation summary
type Channel struct {
	ID        string
	Name      string
	IsPrivate bool
	IsMember  bool
	Topic     string
	Purpose   string
}

// Message is one entry of a channel history
type Message struct {
	Timestamp string
	User      string
	Text      string
	SubType   string
	BotID     string
	Files     []string
}

// User is a workspace member profile
type User struct {
	ID          string
	Name        string
	RealName    string
	DisplayName string
	Email       string
	Title       string
	StatusText  string
	Timezone    string
	IsAdmin     bool
	IsBot       bool
	Deleted     bool
}

// SearchMatch is one search hit
type SearchMatch struct {
	Channel   string
	User      string
	Username  string
	Text      string
	Timestamp string
	Permalink string
}

func channelFromSDK(ch slack.Channel) Channel {
	return Channel{
		ID:        ch.ID,
		Name:      ch.Name,
		IsPrivate: ch.IsPrivate,
		IsMember:  ch.IsMember,
		Topic:     ch.Topic.Value,
		Purpose:   ch.Purpose.Value,
	}
}

func messageFromSDK(msg slack.Message) Message {
	m := Message{
		Timestamp: msg.Timestamp,
		User:      msg.User,
		Text:      msg.Text,
		SubType:   msg.SubType,
		BotID:     msg.BotID,
	}
	for _, f := range msg.Files {
		m.Files = append(m.Files, f.Name)
	}
	return m
}

func userFromSDK(u slack.User) User {
	return User{
		ID:          u.ID,
		Name:        u.Name,
		RealName:    u.Profile.RealName,
		DisplayName: u.Profile.DisplayName,
		Email:       u.Profile.Email,
		Title:       u.Profile.Title,
		StatusText:  u.Profile.StatusText,
		Timezone:    u.TZ,
		IsAdmin:     u.IsAdmin,
		IsBot:       u.IsBot,
		Deleted:     u.Deleted,
	}
}
