// Package platform is the bot's boundary to the Discord REST API.
package platform

import (
	"context"
	"errors"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// MaxReasonLength is the longest audit-log reason Discord accepts.
const MaxReasonLength = 100

// ErrDirectMessagesClosed means the member does not accept direct messages from the bot.
var ErrDirectMessagesClosed = errors.New("member does not accept direct messages")

type Guild struct {
	ID   snowflake.ID
	Name string
}

type Channel struct {
	ID snowflake.ID
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
	Timestamp   *time.Time
}

// Message is posted with mentions rendered but never pinging anyone.
type Message struct {
	Content string
	Embeds  []Embed
}

// Client performs the platform side of moderation actions.
type Client interface {
	// CreateBan bans a user. deleteMessageSeconds nil keeps their messages.
	CreateBan(ctx context.Context, guildID, userID snowflake.ID, deleteMessageSeconds *int, reason string) error
	RemoveBan(ctx context.Context, guildID, userID snowflake.ID, reason string) error
	RemoveMember(ctx context.Context, guildID, userID snowflake.ID, reason string) error
	// TimeoutMember mutes a member until the given time; nil lifts the timeout.
	TimeoutMember(ctx context.Context, guildID, userID snowflake.ID, until *time.Time, reason string) error
	CreateDirectChannel(ctx context.Context, userID snowflake.ID) (Channel, error)
	GetGuild(ctx context.Context, guildID snowflake.ID) (Guild, error)
	PostMessage(ctx context.Context, channelID snowflake.ID, msg Message) error
}
