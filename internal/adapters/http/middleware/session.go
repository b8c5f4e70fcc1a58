package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextKeySessionID is the gin context key for the session ID.
	ContextKeySessionID = "session_id"

	// DefaultSessionCookie is used when no cookie name is configured.
	DefaultSessionCookie = "quotebook_session"
)

// SessionConfig configures the session cookie.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session returns middleware that gives every browser a session ID.
// The ID lives in an HttpOnly cookie; a missing or non-UUID cookie is
// replaced with a fresh UUID. The cookie is refreshed on every request so
// it expires together with the idle session.
func Session(cfg SessionConfig) gin.HandlerFunc {
	name := cfg.CookieName
	if name == "" {
		name = DefaultSessionCookie
	}

	maxAge := int(cfg.TTL / time.Second)

	return func(c *gin.Context) {
		id, err := c.Cookie(name)
		if err == nil {
			_, err = uuid.Parse(id)
		}

		if err != nil {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(name, id, maxAge, "/", "", cfg.Secure, true)
		c.Set(ContextKeySessionID, id)

		c.Next()
	}
}

// GetSessionID returns the session ID set by Session, or "".
func GetSessionID(c *gin.Context) string {
	return c.GetString(ContextKeySessionID)
}
