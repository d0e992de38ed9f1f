package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"beryllium.app/bot/common/logger"
	"beryllium.app/bot/internal/events"
	"beryllium.app/bot/internal/model"
	"beryllium.app/bot/internal/platform"
	"beryllium.app/bot/internal/store"
	"github.com/disgoorg/snowflake/v2"
)

// ErrGuildNotConfigured is returned when an infraction arrives for a guild without settings.
var ErrGuildNotConfigured = errors.New("guild has no settings")

// SettingsReader is the slice of guild settings storage the audit log needs.
type SettingsReader interface {
	GetByGuildID(ctx context.Context, guildID snowflake.ID) (*model.GuildSettings, error)
}

// AuditLog posts a case summary to the guild's log channel for every new infraction.
type AuditLog struct {
	settings SettingsReader
	client   platform.Client
}

func NewAuditLog(settings SettingsReader, client platform.Client) *AuditLog {
	return &AuditLog{settings: settings, client: client}
}

func (a *AuditLog) HandleEvent(ctx context.Context, ev events.Event) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "beryllium.notify.audit_log"})

	if ev.Kind != events.KindInfractionCreated {
		// updates are accepted but not logged yet
		slog.DebugContext(ctx, "audit log ignoring event", "kind", ev.Kind)
		return nil
	}

	inf := ev.Infraction
	settings, err := a.settings.GetByGuildID(ctx, inf.GuildID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			auditLogPosts.WithLabelValues("unconfigured").Inc()
			return fmt.Errorf("logging case %d for guild %s: %w", inf.CaseID, inf.GuildID, ErrGuildNotConfigured)
		}
		return fmt.Errorf("loading guild settings: %w", err)
	}

	if !settings.HasLogChannel() {
		auditLogPosts.WithLabelValues("disabled").Inc()
		return nil
	}

	msg := platform.Message{Embeds: []platform.Embed{auditEmbed(inf)}}
	if err := a.client.PostMessage(ctx, *settings.LogChannelID, msg); err != nil {
		// no retry queue: a missed log line is accepted
		auditLogPosts.WithLabelValues("failed").Inc()
		slog.WarnContext(ctx, "audit log channel unreachable",
			"channel_id", settings.LogChannelID.String(),
			"error", err)
		return nil
	}

	auditLogPosts.WithLabelValues("posted").Inc()
	slog.DebugContext(ctx, "audit log posted", "channel_id", settings.LogChannelID.String())
	return nil
}
