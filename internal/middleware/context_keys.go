package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context, falling back to the request context. It returns the user ID
// and a boolean indicating whether it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := userIDVal.(string); ok {
			return userID, true
		}
		return "", false
	}
	return GetUserIDFromCtx(c.Request.Context())
}

// GetUserIDFromCtx retrieves the authenticated user ID from a standard
// context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	if userID, ok := ctx.Value(userIDKey).(string); ok && userID != "" {
		return userID, true
	}
	return "", false
}
