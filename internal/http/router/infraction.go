package router

import (
	"beryllium.app/bot/internal/http/handler"
	"github.com/gin-gonic/gin"
)

// InfractionRouter sets up case routes under /guilds/:guild_id/infractions
func InfractionRouter(rg *gin.RouterGroup, h *handler.ModerationHandler) {
	rg.POST("/warnings", h.Warn)
	rg.POST("/mutes", h.Mute)
	rg.POST("/kicks", h.Kick)
	rg.POST("/bans", h.Ban)
	rg.POST("/unbans", h.Unban)
	rg.POST("/unmutes", h.Unmute)
	rg.POST("/pardons", h.Pardon)

	rg.GET("/:case_id", h.GetCase)
	rg.PATCH("/:case_id/hidden", h.SetHidden)
	rg.PATCH("/:case_id/pardon", h.PardonCase)
	rg.PATCH("/:case_id/expiration", h.UpdateExpiration)
}
