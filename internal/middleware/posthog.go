package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/retail_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware reports every successful authenticated call as a product event
// named after its route, e.g. "api_v1_transfers".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		customerID, exists := GetCustomerIDFromContext(c)
		if !exists {
			return
		}

		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		eventName = strings.NewReplacer(":", "", "*", "").Replace(eventName)
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		posthogClient.Enqueue(customerID, eventName, props)
	}
}
