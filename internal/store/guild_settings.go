package store

import (
	"context"
	"errors"

	"beryllium.app/bot/core/db/sqlc"
	"beryllium.app/bot/internal/model"
	"github.com/disgoorg/snowflake/v2"
	"github.com/jackc/pgx/v5"
)

type guildSettingsStore struct {
	queries *sqlc.Queries
}

func newGuildSettingsStore(queries *sqlc.Queries) GuildSettingsStore {
	return &guildSettingsStore{queries: queries}
}

func (s *guildSettingsStore) GetByGuildID(ctx context.Context, guildID snowflake.ID) (*model.GuildSettings, error) {
	row, err := s.queries.GetGuildSettings(ctx, int64(guildID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toGuildSettingsModel(row), nil
}

func (s *guildSettingsStore) Upsert(ctx context.Context, settings *model.GuildSettings) error {
	row, err := s.queries.UpsertGuildSettings(ctx, sqlc.UpsertGuildSettingsParams{
		GuildID:      int64(settings.GuildID),
		LogChannelID: toNullableID(settings.LogChannelID),
	})
	if err != nil {
		return err
	}
	*settings = *toGuildSettingsModel(row)
	return nil
}

func toGuildSettingsModel(row sqlc.GuildSetting) *model.GuildSettings {
	return &model.GuildSettings{
		GuildID:      snowflake.ID(row.GuildID),
		LogChannelID: fromNullableID(row.LogChannelID),
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}
