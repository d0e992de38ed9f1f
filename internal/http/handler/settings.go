package handler

import (
	"net/http"

	"beryllium.app/bot/internal/domain"
	"beryllium.app/bot/internal/http/dto"
	"beryllium.app/bot/internal/service"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settings service.GuildSettingsService
}

func NewSettingsHandler(settings service.GuildSettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	guildID, ok := snowflakeParam(c, "guild_id")
	if !ok {
		return
	}

	settings, err := h.settings.Get(c.Request.Context(), guildID)
	if err != nil {
		respondError(c, err, "failed to get guild settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToGuildSettingsResponse(settings))
}

// Register creates the guild's settings row if it has none and returns the current settings.
func (h *SettingsHandler) Register(c *gin.Context) {
	guildID, ok := snowflakeParam(c, "guild_id")
	if !ok {
		return
	}

	settings, err := h.settings.Register(c.Request.Context(), guildID)
	if err != nil {
		respondError(c, err, "failed to register guild")
		return
	}

	c.JSON(http.StatusOK, dto.ToGuildSettingsResponse(settings))
}

// Put sets or clears the audit log channel.
func (h *SettingsHandler) Put(c *gin.Context) {
	guildID, ok := snowflakeParam(c, "guild_id")
	if !ok {
		return
	}

	var req dto.SetLogChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	settings, err := h.settings.SetLogChannel(c.Request.Context(), domain.SetLogChannel{
		GuildID:   guildID,
		ChannelID: req.ChannelID,
	})
	if err != nil {
		respondError(c, err, "failed to update guild settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToGuildSettingsResponse(settings))
}
