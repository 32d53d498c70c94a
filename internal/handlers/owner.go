package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/banking_app/internal/apperrors"
	portssvc "github.com/SscSPs/banking_app/internal/core/ports/services"
	"github.com/SscSPs/banking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// resolveOwner turns the token subject into the owner id used by accounts.
// On failure it writes the response and returns false.
func resolveOwner(c *gin.Context, users portssvc.UserReaderSvc) (string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	localID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}

	ownerID, err := users.ResolveOwnerID(c.Request.Context(), localID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authenticated user is not registered", slog.String("local_id", localID))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User is not registered"})
			return "", false
		}
		respondError(c, err, "Failed to resolve user")
		return "", false
	}
	return ownerID, true
}
