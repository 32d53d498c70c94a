package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/banking_app/internal/apperrors"
	"github.com/SscSPs/banking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps service errors to HTTP status codes. The outermost AppError kind
// wins over any sentinel further down the chain.
func statusForError(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindAccountNotFound, apperrors.KindSenderAccountNotFound, apperrors.KindReceiverAccountNotFound:
		return http.StatusNotFound
	case apperrors.KindInsufficientBalance:
		return http.StatusUnprocessableEntity
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindDuplicate:
		return http.StatusConflict
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindIdentityProvider:
		return http.StatusBadGateway
	case apperrors.KindStoreFailure:
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": message}. Internal failures get fallbackMsg so store
// details never leak to the client.
func respondError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()), slog.Int("status", status))
		if status == http.StatusBadGateway {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(status, gin.H{"error": fallbackMsg})
		return
	}
	logger.Warn(fallbackMsg, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}
