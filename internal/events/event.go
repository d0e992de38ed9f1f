package events

import (
	"time"

	"beryllium.app/bot/common/id"
	"beryllium.app/bot/internal/model"
)

type Kind string

const (
	KindInfractionCreated Kind = "infraction.created"
	KindInfractionUpdated Kind = "infraction.updated"
)

// Event is a fact about an infraction that has already been persisted.
type Event struct {
	ID         int64                    `json:"id"`
	Kind       Kind                     `json:"kind"`
	OccurredAt time.Time                `json:"occurred_at"`
	Infraction model.InfractionSnapshot `json:"infraction"`
}

func newEvent(kind Kind, snapshot model.InfractionSnapshot) Event {
	return Event{
		ID:         id.New(),
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
		Infraction: snapshot,
	}
}

func InfractionCreated(snapshot model.InfractionSnapshot) Event {
	return newEvent(KindInfractionCreated, snapshot)
}

func InfractionUpdated(snapshot model.InfractionSnapshot) Event {
	return newEvent(KindInfractionUpdated, snapshot)
}
