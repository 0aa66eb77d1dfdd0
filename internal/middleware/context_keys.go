package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Keys used to store the authenticated caller in the request context.
const (
	userIDKey   = contextKey("userID")
	userNameKey = contextKey("userName")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetUserNameFromContext retrieves the display name carried by the token, if any.
func GetUserNameFromContext(c *gin.Context) string {
	name, _ := c.Request.Context().Value(userNameKey).(string)
	return name
}

// WithIdentity returns a copy of ctx carrying the caller identity. Used by the auth
// middleware and by tests that bypass it.
func WithIdentity(ctx context.Context, userID, userName string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userNameKey, userName)
}
