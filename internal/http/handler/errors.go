package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"beryllium.app/bot/internal/service"
	"beryllium.app/bot/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type failureResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func statusFor(kind service.ErrorKind) int {
	switch kind {
	case service.KindValidationFailed:
		return http.StatusBadRequest
	case service.KindDomainRuleViolation:
		return http.StatusConflict
	case service.KindDependencyNotFound:
		return http.StatusNotFound
	case service.KindPlatformActionFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a moderation error as {"error", "kind", "failures"}.
// Anything else is logged and reported as a generic failure.
func respondError(c *gin.Context, err error, fallback string) {
	var merr *service.ModerationError
	if !errors.As(err, &merr) {
		slog.ErrorContext(c.Request.Context(), fallback, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
		return
	}

	body := gin.H{"error": merr.Message, "kind": merr.Kind}
	if len(merr.Failures) > 0 {
		body["failures"] = lo.Map(merr.Failures, func(f validation.Failure, _ int) failureResponse {
			return failureResponse{Field: f.Field, Message: f.Message}
		})
	}
	c.JSON(statusFor(merr.Kind), body)
}
