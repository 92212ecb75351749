package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/gin-gonic/gin"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "userID"
	RoleContextKey   = "role"
)

// UserResolver finds the caller from a bearer token or the session record.
type UserResolver interface {
	ParseToken(token string) (*models.User, error)
	CurrentUser(ctx context.Context, sessionID string) (*models.User, *services.ServiceError)
}

// Authenticate attaches the signed-in user, if any, to the context. A
// bearer token wins over the session record; an invalid token is rejected.
// Requests without credentials pass through anonymously.
func Authenticate(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			if !strings.HasPrefix(header, "Bearer ") {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
				c.Abort()
				return
			}
			user, err := resolver.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				c.Abort()
				return
			}
			setUser(c, user)
			c.Next()
			return
		}

		if sessionID := GetSessionID(c); sessionID != "" {
			if user, svcErr := resolver.CurrentUser(c.Request.Context(), sessionID); svcErr == nil {
				setUser(c, user)
			}
		}
		c.Next()
	}
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(UserContextKey, user)
	c.Set(UserIDContextKey, user.ID)
	c.Set(RoleContextKey, string(user.Role))
}

// GetUser returns the user attached by Authenticate, or nil.
func GetUser(c *gin.Context) *models.User {
	if val, ok := c.Get(UserContextKey); ok {
		if u, ok := val.(*models.User); ok {
			return u
		}
	}
	return nil
}

// RequireUser rejects anonymous requests.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUser(c) == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole lets through signed-in users holding one of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		c.Abort()
	}
}

// AdminOnly restricts access to admin role.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleContextKey)
		if !exists || role != string(models.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
