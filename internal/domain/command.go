package domain

import (
	"time"

	"beryllium.app/bot/internal/model"
	"github.com/disgoorg/snowflake/v2"
)

// Subject identifies who is acting on whom, and where.
type Subject struct {
	GuildID     snowflake.ID
	ModeratorID snowflake.ID
	UserID      snowflake.ID
}

// Issue commands create a new infraction. Each is consumed by exactly one
// pipeline handler.

type IssueWarning struct {
	Subject
	Duration    *time.Duration
	Reason      string
	IsAutomated bool
}

type IssueMute struct {
	Subject
	Duration    *time.Duration
	Reason      string
	IsAutomated bool
}

type IssueKick struct {
	Subject
	Reason      string
	IsAutomated bool
}

type IssueBan struct {
	Subject
	Duration          *time.Duration // nil bans permanently
	DeleteMessageTime *time.Duration // window of the member's messages to delete
	Reason            string
	IsAutomated       bool
}

type IssueUnban struct {
	Subject
	Reason      string
	IsAutomated bool
}

type IssueUnmute struct {
	Subject
	Reason      string
	IsAutomated bool
}

type IssuePardon struct {
	Subject
	CaseID      int64
	Reason      string
	IsAutomated bool
}

// Case commands change an existing infraction.

type HideInfraction struct {
	GuildID     snowflake.ID
	ModeratorID snowflake.ID
	CaseID      int64
	Hidden      bool
}

type PardonInfraction struct {
	GuildID     snowflake.ID
	ModeratorID snowflake.ID
	CaseID      int64
}

type UpdateInfractionExpiration struct {
	GuildID     snowflake.ID
	ModeratorID snowflake.ID
	CaseID      int64
	ExpiresAt   *time.Time // nil clears the expiration
}

// NotifyUserOfInfraction asks for the affected member to be told about an infraction.
type NotifyUserOfInfraction struct {
	Infraction model.InfractionSnapshot
}

type SetLogChannel struct {
	GuildID   snowflake.ID
	ChannelID *snowflake.ID // nil disables the audit log
}
