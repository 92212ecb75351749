// Package middleware resolves sessions and users and guards routes.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader     = "X-Session-ID"
	SessionCookie     = "session_id"
	SessionContextKey = "sessionID"

	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

// Session resolves the browser session from the X-Session-ID header, then
// the session_id cookie. A new session id is issued as a cookie when both
// are missing.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
				sessionID = v
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}

		c.Set(SessionContextKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session id set by Session.
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionContextKey)
}
