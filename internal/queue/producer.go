package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"beryllium.app/bot/internal/events"
	"github.com/redis/go-redis/v9"
)

// defaultMaxLen caps the stream so an absent consumer cannot grow it unbounded.
const defaultMaxLen = 100_000

// Mirror appends every infraction event to a Redis stream for external consumers.
type Mirror struct {
	client *redis.Client
	stream string
	maxLen int64
	logger *slog.Logger
}

func NewRedisMirror(client *redis.Client, stream string, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{
		client: client,
		stream: stream,
		maxLen: defaultMaxLen,
		logger: logger,
	}
}

func (m *Mirror) HandleEvent(ctx context.Context, ev events.Event) error {
	values, err := messageValues(ev)
	if err != nil {
		return err
	}

	if err := m.client.XAdd(ctx, &redis.XAddArgs{
		Stream: m.stream,
		MaxLen: m.maxLen,
		Approx: true,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("mirror event: %w", err)
	}

	m.logger.DebugContext(ctx, "mirrored infraction event", "event_id", ev.ID, "kind", ev.Kind, "stream", m.stream)
	return nil
}

func (m *Mirror) Close() error {
	return m.client.Close()
}

// messageValues flattens an event into stream fields. The full snapshot
// travels as JSON in "infraction".
func messageValues(ev events.Event) (map[string]any, error) {
	payload, err := json.Marshal(ev.Infraction)
	if err != nil {
		return nil, fmt.Errorf("encoding infraction snapshot: %w", err)
	}

	return map[string]any{
		"event_id":    ev.ID,
		"kind":        string(ev.Kind),
		"occurred_at": ev.OccurredAt.UTC().Format(time.RFC3339Nano),
		"guild_id":    ev.Infraction.GuildID.String(),
		"case_id":     ev.Infraction.CaseID,
		"type":        string(ev.Infraction.Type),
		"infraction":  string(payload),
	}, nil
}
