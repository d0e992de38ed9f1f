package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"beryllium.app/bot/internal/domain"
	"beryllium.app/bot/internal/http/dto"
	"beryllium.app/bot/internal/service"
	"github.com/disgoorg/snowflake/v2"
	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderation service.ModerationService
}

func NewModerationHandler(moderation service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

type issueFunc func(ctx context.Context, guildID snowflake.ID, req dto.IssueInfractionRequest) (*service.InfractionResult, error)

func (h *ModerationHandler) Warn(c *gin.Context) {
	h.issue(c, func(ctx context.Context, guildID snowflake.ID, req dto.IssueInfractionRequest) (*service.InfractionResult, error) {
		return h.moderation.IssueWarning(ctx, domain.IssueWarning{
			Subject:     req.Subject(guildID),
			Duration:    req.Duration(),
			Reason:      req.Reason,
			IsAutomated: req.Automated,
		})
	})
}

func (h *ModerationHandler) Mute(c *gin.Context) {
	h.issue(c, func(ctx context.Context, guildID snowflake.ID, req dto.IssueInfractionRequest) (*service.InfractionResult, error) {
		return h.moderation.IssueMute(ctx, domain.IssueMute{
			Subject:     req.Subject(guildID),
			Duration:    req.Duration(),
			Reason:      req.Reason,
			IsAutomated: req.Automated,
		})
	})
}

func (h *ModerationHandler) Kick(c *gin.Context) {
	h.issue(c, func(ctx context.Context, guildID snowflake.ID, req dto.IssueInfractionRequest) (*service.InfractionResult, error) {
		return h.moderation.IssueKick(ctx, domain.IssueKick{
			Subject:     req.Subject(guildID),
			Reason:      req.Reason,
			IsAutomated: req.Automated,
		})
	})
}

func (h *ModerationHandler) Ban(c *gin.Context) {
	h.issue(c, func(ctx context.Context, guildID snowflake.ID, req dto.IssueInfractionRequest) (*service.InfractionResult, error) {
		return h.moderation.IssueBan(ctx, domain.IssueBan{
			Subject:           req.Subject(guildID),
			Duration:          req.Duration(),
			DeleteMessageTime: req.DeleteMessageTime(),
			Reason:            req.Reason,
			IsAutomated:       req.Automated,
		})
	})
}

func (h *ModerationHandler) Unban(c *gin.Context) {
	h.issue(c, func(ctx context.Context, guildID snowflake.ID, req dto.IssueInfractionRequest) (*service.InfractionResult, error) {
		return h.moderation.IssueUnban(ctx, domain.IssueUnban{
			Subject:     req.Subject(guildID),
			Reason:      req.Reason,
			IsAutomated: req.Automated,
		})
	})
}

func (h *ModerationHandler) Unmute(c *gin.Context) {
	h.issue(c, func(ctx context.Context, guildID snowflake.ID, req dto.IssueInfractionRequest) (*service.InfractionResult, error) {
		return h.moderation.IssueUnmute(ctx, domain.IssueUnmute{
			Subject:     req.Subject(guildID),
			Reason:      req.Reason,
			IsAutomated: req.Automated,
		})
	})
}

func (h *ModerationHandler) issue(c *gin.Context, run issueFunc) {
	guildID, ok := snowflakeParam(c, "guild_id")
	if !ok {
		return
	}

	var req dto.IssueInfractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: user_id and moderator_id are required"})
		return
	}

	result, err := run(c.Request.Context(), guildID, req)
	h.respondIssued(c, result, err)
}

// Pardon records a pardon infraction referencing case_id.
func (h *ModerationHandler) Pardon(c *gin.Context) {
	guildID, ok := snowflakeParam(c, "guild_id")
	if !ok {
		return
	}

	var req dto.IssuePardonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: user_id, moderator_id and case_id are required"})
		return
	}

	result, err := h.moderation.IssuePardon(c.Request.Context(), domain.IssuePardon{
		Subject:     domain.Subject{GuildID: guildID, ModeratorID: req.ModeratorID, UserID: req.UserID},
		CaseID:      req.CaseID,
		Reason:      req.Reason,
		IsAutomated: req.Automated,
	})
	h.respondIssued(c, result, err)
}

// respondIssued reports a recorded case even when the Discord action failed.
func (h *ModerationHandler) respondIssued(c *gin.Context, result *service.InfractionResult, err error) {
	if err == nil {
		c.JSON(http.StatusCreated, dto.ToIssueResponse(result))
		return
	}

	var merr *service.ModerationError
	if result != nil && errors.As(err, &merr) {
		c.JSON(statusFor(merr.Kind), gin.H{
			"error":      merr.Message,
			"kind":       merr.Kind,
			"infraction": dto.ToIssueResponse(result),
		})
		return
	}
	respondError(c, err, "failed to issue infraction")
}

func (h *ModerationHandler) SetHidden(c *gin.Context) {
	guildID, caseID, ok := caseRoute(c)
	if !ok {
		return
	}

	var req dto.SetHiddenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: moderator_id and hidden are required"})
		return
	}

	result, err := h.moderation.HideInfraction(c.Request.Context(), domain.HideInfraction{
		GuildID:     guildID,
		ModeratorID: req.ModeratorID,
		CaseID:      caseID,
		Hidden:      *req.Hidden,
	})
	h.respondUpdated(c, result, err)
}

func (h *ModerationHandler) PardonCase(c *gin.Context) {
	guildID, caseID, ok := caseRoute(c)
	if !ok {
		return
	}

	var req dto.PardonCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: moderator_id is required"})
		return
	}

	result, err := h.moderation.PardonInfraction(c.Request.Context(), domain.PardonInfraction{
		GuildID:     guildID,
		ModeratorID: req.ModeratorID,
		CaseID:      caseID,
	})
	h.respondUpdated(c, result, err)
}

func (h *ModerationHandler) UpdateExpiration(c *gin.Context) {
	guildID, caseID, ok := caseRoute(c)
	if !ok {
		return
	}

	var req dto.UpdateExpirationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: moderator_id is required"})
		return
	}

	result, err := h.moderation.UpdateInfractionExpiration(c.Request.Context(), domain.UpdateInfractionExpiration{
		GuildID:     guildID,
		ModeratorID: req.ModeratorID,
		CaseID:      caseID,
		ExpiresAt:   req.ExpiresAt,
	})
	h.respondUpdated(c, result, err)
}

func (h *ModerationHandler) respondUpdated(c *gin.Context, result *service.InfractionResult, err error) {
	if err != nil {
		respondError(c, err, "failed to update infraction")
		return
	}

	slog.InfoContext(c.Request.Context(), "case updated via admin API", "case_id", result.CaseID)
	c.JSON(http.StatusOK, dto.ToIssueResponse(result))
}

func (h *ModerationHandler) GetCase(c *gin.Context) {
	guildID, caseID, ok := caseRoute(c)
	if !ok {
		return
	}

	snapshot, err := h.moderation.GetInfraction(c.Request.Context(), guildID, caseID)
	if err != nil {
		respondError(c, err, "failed to get infraction")
		return
	}

	c.JSON(http.StatusOK, dto.ToInfractionResponse(*snapshot))
}

// ListByUser returns a member's case history, newest first. ?limit caps the page.
func (h *ModerationHandler) ListByUser(c *gin.Context) {
	guildID, ok := snowflakeParam(c, "guild_id")
	if !ok {
		return
	}
	userID, ok := snowflakeParam(c, "user_id")
	if !ok {
		return
	}

	var limit int32
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = int32(n)
	}

	history, err := h.moderation.ListInfractions(c.Request.Context(), guildID, userID, limit)
	if err != nil {
		respondError(c, err, "failed to list infractions")
		return
	}

	c.JSON(http.StatusOK, dto.ToInfractionListResponse(history))
}

func caseRoute(c *gin.Context) (snowflake.ID, int64, bool) {
	guildID, ok := snowflakeParam(c, "guild_id")
	if !ok {
		return 0, 0, false
	}
	caseID, ok := caseParam(c)
	if !ok {
		return 0, 0, false
	}
	return guildID, caseID, true
}
