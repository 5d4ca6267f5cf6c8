package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ebookstore/backend/internal/infrastructure/config"
)

// SessionIDKey is the gin context key holding the cart session ID
const SessionIDKey = "session_id"

// CartSession returns a middleware that assigns each browser a cart
// session cookie. The cookie is an opaque random ID; the cart itself
// lives server-side in the session store.
func CartSession(cfg config.SessionConfig) gin.HandlerFunc {
	maxAge := int(cfg.IdleExpiry.Seconds())

	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
		}

		// Refresh the cookie on every request so active shoppers keep
		// their session alive
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, sessionID, maxAge, "/", "", cfg.Secure, true)

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the cart session ID from gin context
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
