package middleware

import "github.com/gin-gonic/gin"

// userIDKey stores the authenticated shop owner's user ID. A custom type
// prevents collisions with other context values.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID set by
// AuthMiddleware. It checks the standard request context first and falls back
// to the Gin context map for handlers invoked outside the middleware chain.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
		return userID, true
	}

	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
