package router

import (
	"beryllium.app/bot/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func SettingsRouter(rg *gin.RouterGroup, h *handler.SettingsHandler) {
	rg.GET("", h.Get)
	rg.POST("", h.Register)
	rg.PUT("", h.Put)
}
