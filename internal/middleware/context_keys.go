package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// customerIDKey holds the authenticated customer's ID.
const customerIDKey = contextKey("customerID")

// WithCustomerID returns a copy of ctx carrying the customer ID.
func WithCustomerID(ctx context.Context, customerID string) context.Context {
	return context.WithValue(ctx, customerIDKey, customerID)
}

// GetCustomerIDFromContext retrieves the authenticated customer ID from the Gin context,
// falling back to the request context.
func GetCustomerIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(customerIDKey)); exists {
		id, ok := v.(string)
		return id, ok && id != ""
	}
	id, ok := c.Request.Context().Value(customerIDKey).(string)
	return id, ok && id != ""
}
