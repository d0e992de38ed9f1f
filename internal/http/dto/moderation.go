package dto

import (
	"time"

	"beryllium.app/bot/internal/domain"
	"beryllium.app/bot/internal/model"
	"beryllium.app/bot/internal/service"
	"github.com/disgoorg/snowflake/v2"
	"github.com/samber/lo"
)

// IssueInfractionRequest is the body shared by warnings, mutes, kicks, bans, unbans and unmutes.
// Ids travel as JSON strings.
type IssueInfractionRequest struct {
	UserID               snowflake.ID `json:"user_id" binding:"required" jsonschema:"type=string,description=Member the infraction targets"`
	ModeratorID          snowflake.ID `json:"moderator_id" binding:"required" jsonschema:"type=string,description=Moderator issuing the infraction"`
	Reason               string       `json:"reason,omitempty" jsonschema:"maxLength=1024"`
	DurationSeconds      *int64       `json:"duration_seconds,omitempty" jsonschema:"minimum=1,description=Required for mutes; optional for warnings and bans"`
	DeleteMessageSeconds *int64       `json:"delete_message_seconds,omitempty" jsonschema:"minimum=0,maximum=1209600,description=Bans only"`
	Automated            bool         `json:"automated,omitempty"`
}

func (r IssueInfractionRequest) Subject(guildID snowflake.ID) domain.Subject {
	return domain.Subject{GuildID: guildID, ModeratorID: r.ModeratorID, UserID: r.UserID}
}

func (r IssueInfractionRequest) Duration() *time.Duration {
	return seconds(r.DurationSeconds)
}

func (r IssueInfractionRequest) DeleteMessageTime() *time.Duration {
	return seconds(r.DeleteMessageSeconds)
}

type IssuePardonRequest struct {
	UserID      snowflake.ID `json:"user_id" binding:"required" jsonschema:"type=string"`
	ModeratorID snowflake.ID `json:"moderator_id" binding:"required" jsonschema:"type=string"`
	CaseID      int64        `json:"case_id" binding:"required" jsonschema:"minimum=1"`
	Reason      string       `json:"reason,omitempty" jsonschema:"maxLength=1024"`
	Automated   bool         `json:"automated,omitempty"`
}

type SetHiddenRequest struct {
	ModeratorID snowflake.ID `json:"moderator_id" binding:"required" jsonschema:"type=string"`
	Hidden      *bool        `json:"hidden" binding:"required"`
}

type PardonCaseRequest struct {
	ModeratorID snowflake.ID `json:"moderator_id" binding:"required" jsonschema:"type=string"`
}

// UpdateExpirationRequest clears the expiration when expires_at is null or absent.
type UpdateExpirationRequest struct {
	ModeratorID snowflake.ID `json:"moderator_id" binding:"required" jsonschema:"type=string"`
	ExpiresAt   *time.Time   `json:"expires_at"`
}

type IssueResponse struct {
	CaseID       int64                `json:"case_id"`
	Type         model.InfractionType `json:"type"`
	UserID       snowflake.ID         `json:"user_id"`
	ModeratorID  snowflake.ID         `json:"moderator_id"`
	Reason       string               `json:"reason"`
	ExpiresAt    *time.Time           `json:"expires_at,omitempty"`
	UserNotified bool                 `json:"user_notified"`
}

func ToIssueResponse(r *service.InfractionResult) *IssueResponse {
	return &IssueResponse{
		CaseID:       r.CaseID,
		Type:         r.Type,
		UserID:       r.UserID,
		ModeratorID:  r.ModeratorID,
		Reason:       r.Reason,
		ExpiresAt:    r.ExpiresAt,
		UserNotified: r.UserNotified,
	}
}

type InfractionResponse struct {
	CaseID      int64                `json:"case_id"`
	Type        model.InfractionType `json:"type"`
	GuildID     snowflake.ID         `json:"guild_id"`
	UserID      snowflake.ID         `json:"user_id"`
	ModeratorID snowflake.ID         `json:"moderator_id"`
	Reason      string               `json:"reason"`
	Automated   bool                 `json:"automated"`
	Hidden      bool                 `json:"hidden"`
	Pardoned    bool                 `json:"pardoned"`
	Active      bool                 `json:"active"`
	CreatedAt   time.Time            `json:"created_at"`
	ExpiresAt   *time.Time           `json:"expires_at,omitempty"`
	PardonID    *int64               `json:"pardon_id,omitempty"`
	PardonedBy  *snowflake.ID        `json:"pardoned_by,omitempty"`
}

func ToInfractionResponse(s model.InfractionSnapshot) InfractionResponse {
	return InfractionResponse{
		CaseID:      s.CaseID,
		Type:        s.Type,
		GuildID:     s.GuildID,
		UserID:      s.UserID,
		ModeratorID: s.ModeratorID,
		Reason:      s.Reason,
		Automated:   s.Status.Has(model.StatusAutomated),
		Hidden:      s.Status.Has(model.StatusHidden),
		Pardoned:    s.Status.Has(model.StatusPardoned),
		Active:      s.IsActive,
		CreatedAt:   s.CreatedAt,
		ExpiresAt:   s.ExpiresAt,
		PardonID:    s.PardonID,
		PardonedBy:  s.PardonedBy,
	}
}

type InfractionListResponse struct {
	Infractions []InfractionResponse `json:"infractions"`
}

func ToInfractionListResponse(snapshots []model.InfractionSnapshot) *InfractionListResponse {
	return &InfractionListResponse{
		Infractions: lo.Map(snapshots, func(s model.InfractionSnapshot, _ int) InfractionResponse {
			return ToInfractionResponse(s)
		}),
	}
}

func seconds(s *int64) *time.Duration {
	if s == nil {
		return nil
	}
	d := time.Duration(*s) * time.Second
	return &d
}
