package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coastwatch/models"
)

// ContextUserKey is where the resolved user lives in the gin context.
const ContextUserKey = "user"

// UserResolver turns a bearer token into the user behind it.
type UserResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware validates JWT tokens for protected routes
func AuthMiddleware(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing authorization header"})
			c.Abort()
			return
		}

		user, err := resolver.ResolveToken(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// OptionalAuth resolves a bearer token when one is present but never
// rejects the request. Used by hazard submission, where citizen
// attribution is opt-in.
func OptionalAuth(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c.GetHeader("Authorization"))
		if tokenString != "" {
			if user, err := resolver.ResolveToken(c.Request.Context(), tokenString); err == nil {
				c.Set(ContextUserKey, user)
			}
		}
		c.Next()
	}
}

// RequireAdmin gates a route on the resolved user's role. Must run
// after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "not authorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by the auth middleware, nil when
// the request is anonymous.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// extractToken extracts the token from the Authorization header
func extractToken(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Next()
	}
}
