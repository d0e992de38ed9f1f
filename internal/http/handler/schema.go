package handler

import (
	"net/http"

	"beryllium.app/bot/internal/http/dto"
	"github.com/gin-gonic/gin"
)

// Schema serves the JSON schema of a request body so dashboards can build forms.
func Schema(c *gin.Context) {
	schema, ok := dto.RequestSchema(c.Param("command"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "unknown command",
			"commands": dto.RequestSchemaNames(),
		})
		return
	}
	c.JSON(http.StatusOK, schema)
}
