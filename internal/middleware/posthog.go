package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/banking_app/internal/utils"
	"github.com/gin-gonic/gin"
)

var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware reports successful authenticated API calls to PostHog.
// The event name is derived from the route, e.g. "/api/v1/transactions/send" -> "api_v1_transactions_send".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := posthogEventName(c.FullPath())
		if eventName == "" {
			return
		}

		// Route params such as :iban are left out; account identifiers are not analytics data.
		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

func posthogEventName(fullPath string) string {
	name := strings.TrimPrefix(fullPath, "/")
	name = strings.ReplaceAll(name, "/:", "_by_")
	return strings.ReplaceAll(name, "/", "_")
}
