package model

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// DefaultReason replaces an empty reason.
const DefaultReason = "No reason provided."

type InfractionType string

const (
	InfractionTypeWarning InfractionType = "warning"
	InfractionTypeMute    InfractionType = "mute"
	InfractionTypeKick    InfractionType = "kick"
	InfractionTypeBan     InfractionType = "ban"
	InfractionTypeUnban   InfractionType = "unban"
	InfractionTypeUnmute  InfractionType = "unmute"
	InfractionTypePardon  InfractionType = "pardon"
)

var infractionTypeNames = map[InfractionType]string{
	InfractionTypeWarning: "Warning",
	InfractionTypeMute:    "Mute",
	InfractionTypeKick:    "Kick",
	InfractionTypeBan:     "Ban",
	InfractionTypeUnban:   "Unban",
	InfractionTypeUnmute:  "Unmute",
	InfractionTypePardon:  "Pardon",
}

func (t InfractionType) IsValid() bool {
	_, ok := infractionTypeNames[t]
	return ok
}

// DisplayName is the capitalised name shown in Discord messages.
func (t InfractionType) DisplayName() string {
	if name, ok := infractionTypeNames[t]; ok {
		return name
	}
	return string(t)
}

// SupportsExpiration reports whether infractions of this type may expire.
func (t InfractionType) SupportsExpiration() bool {
	switch t {
	case InfractionTypeWarning, InfractionTypeMute, InfractionTypeBan:
		return true
	default:
		return false
	}
}

// Pardonable reports whether infractions of this type can be pardoned.
// Reversals are never pardonable.
func (t InfractionType) Pardonable() bool {
	switch t {
	case InfractionTypeUnban, InfractionTypeUnmute, InfractionTypePardon:
		return false
	default:
		return t.IsValid()
	}
}

// Status is a bit-set of independent infraction flags.
type Status uint8

const (
	StatusAutomated Status = 1 << iota
	StatusHidden
	StatusPardoned

	StatusNone Status = 0
)

func (s Status) Has(flag Status) bool {
	return s&flag == flag
}

func (s Status) with(flag Status, set bool) Status {
	if set {
		return s | flag
	}
	return s &^ flag
}

// Params are the inputs shared by every infraction factory.
type Params struct {
	GuildID     snowflake.ID
	UserID      snowflake.ID
	ModeratorID snowflake.ID
	Reason      string
	Automated   bool
}

// Infraction is a recorded moderation action. It can only be built through
// the Create* factories or RestoreInfraction, and changed through its methods.
type Infraction struct {
	id          int64
	guildID     snowflake.ID
	userID      snowflake.ID
	moderatorID snowflake.ID
	kind        InfractionType
	reason      string
	status      Status
	createdAt   time.Time
	expiresAt   *time.Time
	pardonID    *int64
	pardonedBy  *snowflake.ID
}

func newInfraction(p Params, kind InfractionType, duration *time.Duration) (*Infraction, error) {
	if duration != nil && *duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if duration != nil && !kind.SupportsExpiration() {
		return nil, domainErrorf(ErrTypeHasNoExpiration,
			fmt.Sprintf("%s infractions do not support expirations.", kind.DisplayName()))
	}

	reason := p.Reason
	if reason == "" {
		reason = DefaultReason
	}

	inf := &Infraction{
		guildID:     p.GuildID,
		userID:      p.UserID,
		moderatorID: p.ModeratorID,
		kind:        kind,
		reason:      reason,
		status:      StatusNone.with(StatusAutomated, p.Automated),
		createdAt:   time.Now().UTC(),
	}
	if duration != nil {
		expires := inf.createdAt.Add(*duration)
		inf.expiresAt = &expires
	}
	return inf, nil
}

// CreateWarning records a warning. A nil duration never expires.
func CreateWarning(p Params, duration *time.Duration) (*Infraction, error) {
	return newInfraction(p, InfractionTypeWarning, duration)
}

// CreateMute records a mute lasting duration.
func CreateMute(p Params, duration *time.Duration) (*Infraction, error) {
	return newInfraction(p, InfractionTypeMute, duration)
}

// CreateBan records a ban. A nil duration is permanent.
func CreateBan(p Params, duration *time.Duration) (*Infraction, error) {
	return newInfraction(p, InfractionTypeBan, duration)
}

func CreateKick(p Params) (*Infraction, error) {
	return newInfraction(p, InfractionTypeKick, nil)
}

func CreateUnban(p Params) (*Infraction, error) {
	return newInfraction(p, InfractionTypeUnban, nil)
}

func CreateUnmute(p Params) (*Infraction, error) {
	return newInfraction(p, InfractionTypeUnmute, nil)
}

// CreatePardon records a pardon of caseID. The referenced case is not looked up.
func CreatePardon(p Params, caseID int64) *Infraction {
	// a pardon never carries a duration so construction cannot fail
	inf, _ := newInfraction(p, InfractionTypePardon, nil)
	inf.pardonID = &caseID
	return inf
}

func (i *Infraction) ID() int64 { return i.id }
func (i *Infraction) GuildID() snowflake.ID { return i.guildID }
func (i *Infraction) UserID() snowflake.ID { return i.userID }
func (i *Infraction) ModeratorID() snowflake.ID { return i.moderatorID }
func (i *Infraction) Type() InfractionType { return i.kind }
func (i *Infraction) Reason() string { return i.reason }
func (i *Infraction) Status() Status { return i.status }
func (i *Infraction) CreatedAt() time.Time { return i.createdAt }
func (i *Infraction) ExpiresAt() *time.Time { return copyTime(i.expiresAt) }
func (i *Infraction) PardonID() *int64 { return i.pardonID }
func (i *Infraction) PardonedBy() *snowflake.ID { return i.pardonedBy }
func (i *Infraction) IsAutomated() bool { return i.status.Has(StatusAutomated) }
func (i *Infraction) IsHidden() bool { return i.status.Has(StatusHidden) }
func (i *Infraction) IsPardoned() bool { return i.status.Has(StatusPardoned) }
func (i *Infraction) IsExpired() bool { return i.IsExpiredAt(time.Now()) }
func (i *Infraction) IsActive() bool { return i.IsActiveAt(time.Now()) }

func (i *Infraction) IsExpiredAt(t time.Time) bool {
	return i.expiresAt != nil && !i.expiresAt.After(t)
}

func (i *Infraction) IsActiveAt(t time.Time) bool {
	return !i.IsHidden() && !i.IsPardoned() && !i.IsExpiredAt(t)
}

// AssignID sets the case id allocated by storage. Ids are never reassigned.
func (i *Infraction) AssignID(id int64) {
	if i.id == 0 {
		i.id = id
	}
}

// Hide sets or clears the hidden flag. Setting the current value is a no-op.
func (i *Infraction) Hide(hidden bool) error {
	i.status = i.status.with(StatusHidden, hidden)
	return nil
}

// Pardon marks the infraction pardoned by the given moderator.
func (i *Infraction) Pardon(by snowflake.ID) error {
	if !i.kind.Pardonable() {
		return domainErrorf(ErrTypeNotPardonable,
			fmt.Sprintf("%s infractions cannot be pardoned.", i.kind.DisplayName()))
	}
	if i.IsPardoned() {
		return ErrAlreadyPardoned
	}
	i.status = i.status.with(StatusPardoned, true)
	i.pardonedBy = &by
	return nil
}

// UpdateExpiration replaces the expiration. Expirations may only move later;
// nil clears the expiration.
func (i *Infraction) UpdateExpiration(expiresAt *time.Time) error {
	if !i.kind.SupportsExpiration() {
		return domainErrorf(ErrTypeHasNoExpiration,
			fmt.Sprintf("%s infractions do not support expirations.", i.kind.DisplayName()))
	}
	if expiresAt != nil && i.expiresAt != nil && expiresAt.Before(*i.expiresAt) {
		return ErrExpirationMustAdvance
	}
	i.expiresAt = copyTime(expiresAt)
	return nil
}

// InfractionState is the persisted form of an infraction.
type InfractionState struct {
	ID          int64
	GuildID     snowflake.ID
	UserID      snowflake.ID
	ModeratorID snowflake.ID
	Type        InfractionType
	Reason      string
	Status      Status
	CreatedAt   time.Time
	ExpiresAt   *time.Time
	PardonID    *int64
	PardonedBy  *snowflake.ID
}

// RestoreInfraction rebuilds an infraction loaded from storage.
func RestoreInfraction(s InfractionState) *Infraction {
	reason := s.Reason
	if reason == "" {
		reason = DefaultReason
	}
	return &Infraction{
		id:          s.ID,
		guildID:     s.GuildID,
		userID:      s.UserID,
		moderatorID: s.ModeratorID,
		kind:        s.Type,
		reason:      reason,
		status:      s.Status,
		createdAt:   s.CreatedAt,
		expiresAt:   copyTime(s.ExpiresAt),
		pardonID:    s.PardonID,
		pardonedBy:  s.PardonedBy,
	}
}

func (i *Infraction) State() InfractionState {
	return InfractionState{
		ID:          i.id,
		GuildID:     i.guildID,
		UserID:      i.userID,
		ModeratorID: i.moderatorID,
		Type:        i.kind,
		Reason:      i.reason,
		Status:      i.status,
		CreatedAt:   i.createdAt,
		ExpiresAt:   copyTime(i.expiresAt),
		PardonID:    i.pardonID,
		PardonedBy:  i.pardonedBy,
	}
}

// InfractionSnapshot is the read-only view carried by events and shown to users.
type InfractionSnapshot struct {
	CaseID      int64          `json:"case_id"`
	Type        InfractionType `json:"type"`
	GuildID     snowflake.ID   `json:"guild_id"`
	UserID      snowflake.ID   `json:"user_id"`
	ModeratorID snowflake.ID   `json:"moderator_id"`
	Reason      string         `json:"reason"`
	Status      Status         `json:"status"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
	PardonID    *int64         `json:"pardon_id,omitempty"`
	PardonedBy  *snowflake.ID  `json:"pardoned_by,omitempty"`
}

func (s InfractionSnapshot) IsAutomated() bool {
	return s.Status.Has(StatusAutomated)
}

func (i *Infraction) ToSnapshot() InfractionSnapshot {
	return InfractionSnapshot{
		CaseID:      i.id,
		Type:        i.kind,
		GuildID:     i.guildID,
		UserID:      i.userID,
		ModeratorID: i.moderatorID,
		Reason:      i.reason,
		Status:      i.status,
		IsActive:    i.IsActive(),
		CreatedAt:   i.createdAt,
		ExpiresAt:   copyTime(i.expiresAt),
		PardonID:    i.pardonID,
		PardonedBy:  i.pardonedBy,
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
