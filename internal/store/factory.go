package store

import (
	"beryllium.app/bot/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Infractions() InfractionStore {
	return newInfractionStore(s.queries)
}

func (s *Stores) GuildSettings() GuildSettingsStore {
	return newGuildSettingsStore(s.queries)
}
