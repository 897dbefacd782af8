// Package middleware implements the request authentication gate and the
// role-based authorization check for protected routes.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tours_backend/internal/feature/auth/domain/entity"
)

// ContextUser is the gin context key the resolved principal is stored under.
const ContextUser = "currentUser"

// Authenticator resolves a presented credential to its user.
// Following Go convention, the consumer (middleware) defines the interface
// rather than the provider (usecase).
type Authenticator interface {
	AuthenticateToken(ctx context.Context, raw string) (*entity.User, error)
}

// AuthRequired returns a gin middleware that admits only requests carrying
// a valid bearer credential. On success the resolved user is attached to
// the request context for downstream handlers.
//
// Missing header, bad signature, expiry, unknown user and a token predating
// the user's last password change all produce the same 401 response.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		user, err := auth.AuthenticateToken(c.Request.Context(), raw)
		if err != nil {
			slog.Warn("authentication rejected", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// RequireRoles returns a gin middleware that admits only users whose role
// appears in the allowed set. There is no hierarchy: a route open to
// lead-guides does not implicitly admit admins.
// It must run after AuthRequired.
func RequireRoles(allowed ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in"})
			return
		}
		if !user.Role.OneOf(allowed...) {
			slog.Warn("authorization rejected", "role", user.Role, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you do not have permission to perform this action"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the principal attached by AuthRequired, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, ok := v.(*entity.User)
	if !ok {
		return nil
	}
	return user
}
