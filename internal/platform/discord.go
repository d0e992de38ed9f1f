package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// maxBanDeleteSeconds is Discord's ceiling for delete_message_seconds.
const maxBanDeleteSeconds = 7 * 24 * 60 * 60

type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient creates a REST-only session authenticated with a bot token.
func NewDiscordClient(token string) (*DiscordClient, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	session.ShouldRetryOnRateLimit = true
	session.MaxRestRetries = 3
	return &DiscordClient{session: session}, nil
}

// Close releases the underlying session.
func (c *DiscordClient) Close() error {
	return c.session.Close()
}

func (c *DiscordClient) CreateBan(ctx context.Context, guildID, userID snowflake.ID, deleteMessageSeconds *int, reason string) error {
	body := map[string]any{}
	if deleteMessageSeconds != nil {
		body["delete_message_seconds"] = clampDeleteSeconds(*deleteMessageSeconds)
	}

	endpoint := discordgo.EndpointGuildBan(guildID.String(), userID.String())
	_, err := c.session.RequestWithBucketID(http.MethodPut, endpoint, body,
		discordgo.EndpointGuildBan(guildID.String(), ""),
		requestOptions(ctx, reason)...)
	if err != nil {
		return fmt.Errorf("creating ban: %w", err)
	}
	return nil
}

func (c *DiscordClient) RemoveBan(ctx context.Context, guildID, userID snowflake.ID, reason string) error {
	if err := c.session.GuildBanDelete(guildID.String(), userID.String(), requestOptions(ctx, reason)...); err != nil {
		return fmt.Errorf("removing ban: %w", err)
	}
	return nil
}

func (c *DiscordClient) RemoveMember(ctx context.Context, guildID, userID snowflake.ID, reason string) error {
	if err := c.session.GuildMemberDeleteWithReason(guildID.String(), userID.String(), reason, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("removing member: %w", err)
	}
	return nil
}

func (c *DiscordClient) TimeoutMember(ctx context.Context, guildID, userID snowflake.ID, until *time.Time, reason string) error {
	if err := c.session.GuildMemberTimeout(guildID.String(), userID.String(), until, requestOptions(ctx, reason)...); err != nil {
		return fmt.Errorf("updating member timeout: %w", err)
	}
	return nil
}

func (c *DiscordClient) CreateDirectChannel(ctx context.Context, userID snowflake.ID) (Channel, error) {
	ch, err := c.session.UserChannelCreate(userID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return Channel{}, fmt.Errorf("creating direct channel: %w", mapError(err))
	}
	id, err := snowflake.Parse(ch.ID)
	if err != nil {
		return Channel{}, fmt.Errorf("parsing channel id %q: %w", ch.ID, err)
	}
	return Channel{ID: id}, nil
}

func (c *DiscordClient) GetGuild(ctx context.Context, guildID snowflake.ID) (Guild, error) {
	g, err := c.session.Guild(guildID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return Guild{}, fmt.Errorf("fetching guild: %w", err)
	}
	return Guild{ID: guildID, Name: g.Name}, nil
}

func (c *DiscordClient) PostMessage(ctx context.Context, channelID snowflake.ID, msg Message) error {
	_, err := c.session.ChannelMessageSendComplex(channelID.String(), toMessageSend(msg), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("posting message: %w", mapError(err))
	}
	return nil
}

func requestOptions(ctx context.Context, reason string) []discordgo.RequestOption {
	opts := []discordgo.RequestOption{discordgo.WithContext(ctx)}
	if reason != "" {
		opts = append(opts, discordgo.WithAuditLogReason(reason))
	}
	return opts
}

func clampDeleteSeconds(seconds int) int {
	if seconds < 0 {
		return 0
	}
	if seconds > maxBanDeleteSeconds {
		slog.Debug("clamping ban delete window", "requested_seconds", seconds, "max_seconds", maxBanDeleteSeconds)
		return maxBanDeleteSeconds
	}
	return seconds
}

// mapError turns Discord's "cannot send messages to this user" into ErrDirectMessagesClosed.
func mapError(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil &&
		restErr.Message.Code == discordgo.ErrCodeCannotSendMessagesToThisUser {
		return fmt.Errorf("%w: %w", ErrDirectMessagesClosed, err)
	}
	return err
}

func toMessageSend(msg Message) *discordgo.MessageSend {
	send := &discordgo.MessageSend{
		Content: msg.Content,
		// mentions render as names but never notify
		AllowedMentions: &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}},
	}
	for _, e := range msg.Embeds {
		send.Embeds = append(send.Embeds, toDiscordEmbed(e))
	}
	return send
}

func toDiscordEmbed(e Embed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	if e.Timestamp != nil {
		embed.Timestamp = e.Timestamp.UTC().Format(time.RFC3339)
	}
	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	return embed
}
