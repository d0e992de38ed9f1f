package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"beryllium.app/bot/internal/domain"
	"beryllium.app/bot/internal/model"
	"beryllium.app/bot/internal/store"
	"github.com/disgoorg/snowflake/v2"
)

type GuildSettingsService interface {
	Get(ctx context.Context, guildID snowflake.ID) (*model.GuildSettings, error)
	// Register creates the settings row for a guild if it has none yet.
	Register(ctx context.Context, guildID snowflake.ID) (*model.GuildSettings, error)
	SetLogChannel(ctx context.Context, cmd domain.SetLogChannel) (*model.GuildSettings, error)
}

type guildSettingsService struct {
	txRunner TxRunner
	settings store.GuildSettingsStore
}

func NewGuildSettingsService(settings store.GuildSettingsStore, txRunner TxRunner) GuildSettingsService {
	return &guildSettingsService{settings: settings, txRunner: txRunner}
}

func (s *guildSettingsService) Get(ctx context.Context, guildID snowflake.ID) (*model.GuildSettings, error) {
	settings, err := s.settings.GetByGuildID(ctx, guildID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dependencyNotFound("This server has not been set up yet.", err)
		}
		return nil, fmt.Errorf("getting guild settings: %w", err)
	}
	return settings, nil
}

func (s *guildSettingsService) Register(ctx context.Context, guildID snowflake.ID) (*model.GuildSettings, error) {
	var settings *model.GuildSettings
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		existing, err := stores.GuildSettings().GetByGuildID(ctx, guildID)
		if err == nil {
			settings = existing
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		settings = &model.GuildSettings{GuildID: guildID}
		return stores.GuildSettings().Upsert(ctx, settings)
	})
	if err != nil {
		return nil, fmt.Errorf("registering guild %s: %w", guildID, err)
	}
	return settings, nil
}

func (s *guildSettingsService) SetLogChannel(ctx context.Context, cmd domain.SetLogChannel) (*model.GuildSettings, error) {
	if err := domain.SetLogChannelRules.Validate(cmd).Err(); err != nil {
		return nil, validationFailed(err)
	}

	settings := &model.GuildSettings{GuildID: cmd.GuildID, LogChannelID: cmd.ChannelID}
	if err := s.settings.Upsert(ctx, settings); err != nil {
		slog.ErrorContext(ctx, "failed to save guild settings", "guild_id", cmd.GuildID.String(), "error", err)
		return nil, persistenceFailed(fmt.Errorf("saving guild settings: %w", err))
	}

	slog.InfoContext(ctx, "log channel updated",
		"guild_id", cmd.GuildID.String(),
		"enabled", settings.HasLogChannel())
	return settings, nil
}
