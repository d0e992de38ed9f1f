package store

import (
	"context"
	"errors"

	"beryllium.app/bot/internal/model"
	"github.com/disgoorg/snowflake/v2"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// InfractionStore defines the contract for infraction data access.
// Cases are scoped to a guild; a case id from another guild is not found.
type InfractionStore interface {
	GetByCase(ctx context.Context, guildID snowflake.ID, caseID int64) (*model.Infraction, error)
	// GetByCaseForUpdate locks the row until the surrounding transaction ends.
	GetByCaseForUpdate(ctx context.Context, guildID snowflake.ID, caseID int64) (*model.Infraction, error)
	// Create persists a new infraction and assigns its case id.
	Create(ctx context.Context, infraction *model.Infraction) error
	// Update writes the mutable state (status, expiration, pardoner).
	Update(ctx context.Context, infraction *model.Infraction) error
	ListByUser(ctx context.Context, guildID, userID snowflake.ID, limit int32) ([]*model.Infraction, error)
}

// GuildSettingsStore defines the contract for per-guild configuration
type GuildSettingsStore interface {
	GetByGuildID(ctx context.Context, guildID snowflake.ID) (*model.GuildSettings, error)
	Upsert(ctx context.Context, settings *model.GuildSettings) error
}
