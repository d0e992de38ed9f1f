package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"beryllium.app/bot/common/logger"
	"beryllium.app/bot/internal/domain"
	"beryllium.app/bot/internal/platform"
)

// MemberNotifier direct-messages a member about an infraction against them.
type MemberNotifier struct {
	client platform.Client
}

func NewMemberNotifier(client platform.Client) *MemberNotifier {
	return &MemberNotifier{client: client}
}

// Notify returns an error when the member could not be reached. Callers treat
// that as informational.
func (n *MemberNotifier) Notify(ctx context.Context, cmd domain.NotifyUserOfInfraction) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "beryllium.notify.member"})

	if err := domain.NotifyUserOfInfractionRules.Validate(cmd).Err(); err != nil {
		memberNotifications.WithLabelValues("invalid").Inc()
		return err
	}

	inf := cmd.Infraction
	guild, err := n.client.GetGuild(ctx, inf.GuildID)
	if err != nil {
		memberNotifications.WithLabelValues("failed").Inc()
		return fmt.Errorf("fetching guild: %w", err)
	}

	channel, err := n.client.CreateDirectChannel(ctx, inf.UserID)
	if err != nil {
		memberNotifications.WithLabelValues(outcome(err)).Inc()
		return fmt.Errorf("opening direct channel: %w", err)
	}

	if err := n.client.PostMessage(ctx, channel.ID, memberMessage(inf, guild)); err != nil {
		memberNotifications.WithLabelValues(outcome(err)).Inc()
		return fmt.Errorf("sending direct message: %w", err)
	}

	memberNotifications.WithLabelValues("delivered").Inc()
	slog.DebugContext(ctx, "member notified", "case_id", inf.CaseID)
	return nil
}

func outcome(err error) string {
	if errors.Is(err, platform.ErrDirectMessagesClosed) {
		return "dms_closed"
	}
	return "failed"
}
