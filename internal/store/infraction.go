package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beryllium.app/bot/core/db/sqlc"
	"beryllium.app/bot/internal/model"
	"github.com/disgoorg/snowflake/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type infractionStore struct {
	queries *sqlc.Queries
}

func newInfractionStore(queries *sqlc.Queries) InfractionStore {
	return &infractionStore{queries: queries}
}

func (s *infractionStore) GetByCase(ctx context.Context, guildID snowflake.ID, caseID int64) (*model.Infraction, error) {
	row, err := s.queries.GetInfraction(ctx, sqlc.GetInfractionParams{
		GuildID: int64(guildID),
		ID:      caseID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInfractionModel(row), nil
}

func (s *infractionStore) GetByCaseForUpdate(ctx context.Context, guildID snowflake.ID, caseID int64) (*model.Infraction, error) {
	row, err := s.queries.GetInfractionForUpdate(ctx, sqlc.GetInfractionForUpdateParams{
		GuildID: int64(guildID),
		ID:      caseID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInfractionModel(row), nil
}

func (s *infractionStore) Create(ctx context.Context, infraction *model.Infraction) error {
	if infraction.ID() != 0 {
		return fmt.Errorf("infraction already persisted as case %d", infraction.ID())
	}

	state := infraction.State()
	row, err := s.queries.CreateInfraction(ctx, sqlc.CreateInfractionParams{
		GuildID:     int64(state.GuildID),
		UserID:      int64(state.UserID),
		ModeratorID: int64(state.ModeratorID),
		Type:        string(state.Type),
		Reason:      state.Reason,
		Status:      int16(state.Status),
		CreatedAt:   pgtype.Timestamptz{Time: state.CreatedAt, Valid: true},
		ExpiresAt:   toTimestamptz(state.ExpiresAt),
		PardonID:    state.PardonID,
		PardonedBy:  toNullableID(state.PardonedBy),
	})
	if err != nil {
		return err
	}

	infraction.AssignID(row.ID)
	return nil
}

func (s *infractionStore) Update(ctx context.Context, infraction *model.Infraction) error {
	state := infraction.State()
	_, err := s.queries.UpdateInfractionState(ctx, sqlc.UpdateInfractionStateParams{
		GuildID:    int64(state.GuildID),
		ID:         state.ID,
		Status:     int16(state.Status),
		ExpiresAt:  toTimestamptz(state.ExpiresAt),
		PardonedBy: toNullableID(state.PardonedBy),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *infractionStore) ListByUser(ctx context.Context, guildID, userID snowflake.ID, limit int32) ([]*model.Infraction, error) {
	rows, err := s.queries.ListInfractionsByUser(ctx, sqlc.ListInfractionsByUserParams{
		GuildID: int64(guildID),
		UserID:  int64(userID),
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	infractions := make([]*model.Infraction, len(rows))
	for i, row := range rows {
		infractions[i] = toInfractionModel(row)
	}
	return infractions, nil
}

func toInfractionModel(row sqlc.Infraction) *model.Infraction {
	state := model.InfractionState{
		ID:          row.ID,
		GuildID:     snowflake.ID(row.GuildID),
		UserID:      snowflake.ID(row.UserID),
		ModeratorID: snowflake.ID(row.ModeratorID),
		Type:        model.InfractionType(row.Type),
		Reason:      row.Reason,
		Status:      model.Status(row.Status),
		CreatedAt:   row.CreatedAt.Time,
		PardonID:    row.PardonID,
	}
	if row.ExpiresAt.Valid {
		expiresAt := row.ExpiresAt.Time
		state.ExpiresAt = &expiresAt
	}
	if row.PardonedBy != nil {
		by := snowflake.ID(*row.PardonedBy)
		state.PardonedBy = &by
	}
	return model.RestoreInfraction(state)
}

func toTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func toNullableID(id *snowflake.ID) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}

func fromNullableID(v *int64) *snowflake.ID {
	if v == nil {
		return nil
	}
	id := snowflake.ID(*v)
	return &id
}
