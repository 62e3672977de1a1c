package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// roleKey is the key used to store the authenticated user's role in the context.
const roleKey = contextKey("role")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDVal := c.Request.Context().Value(userIDKey)
		if userIDVal != nil {
			return userIDVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetRoleFromCtx retrieves the authenticated user's role from a standard
// context. Services use this to re-check privileged operations; returns an
// empty string when no role is present.
func GetRoleFromCtx(ctx context.Context) string {
	roleVal := ctx.Value(roleKey)
	if roleVal == nil {
		return ""
	}
	role, ok := roleVal.(string)
	if !ok {
		return ""
	}
	return role
}

// WithRole returns a context carrying the given role. Used by tests and
// internal callers that bypass the HTTP auth middleware.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey, role)
}
