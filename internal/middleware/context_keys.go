package middleware

import "github.com/gin-gonic/gin"

// userIDKey and userRoleKey hold the authenticated operator's identity in the
// request context once AuthMiddleware has validated the token.
const (
	userIDKey   = contextKey("userID")
	userRoleKey = contextKey("userRole")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetUserRoleFromContext retrieves the authenticated user's role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	role, ok := c.Request.Context().Value(userRoleKey).(string)
	if !ok || role == "" {
		return "", false
	}
	return role, true
}
