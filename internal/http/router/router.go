package router

import (
	"beryllium.app/bot/internal/http/handler"
	"beryllium.app/bot/internal/http/middleware"
	"beryllium.app/bot/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	AdminAPIKey string
	// Database backs /health; nil skips the ping.
	Database handler.Pinger
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", handler.Health(cfg.Database))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireAPIKey(cfg.AdminAPIKey))
	{
		v1.GET("/schema/:command", handler.Schema)

		guild := v1.Group("/guilds/:guild_id")

		moderationHandler := handler.NewModerationHandler(services.Moderation())
		InfractionRouter(guild.Group("/infractions"), moderationHandler)
		guild.GET("/users/:user_id/infractions", moderationHandler.ListByUser)

		settingsHandler := handler.NewSettingsHandler(services.GuildSettings())
		SettingsRouter(guild.Group("/settings"), settingsHandler)
	}
}
