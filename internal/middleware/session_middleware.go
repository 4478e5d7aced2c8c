package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emres/studentportal/internal/pkg/session"
)

// identityKey is the gin context key the authenticated identity is stored
// under.
const identityKey = "identity"

// SessionMiddleware gates protected routes behind a valid session.
type SessionMiddleware struct {
	sessions *session.Manager
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(sessions *session.Manager) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// RequireSession validates the session cookie and puts the identity into
// the request context. A missing or invalid session redirects to the
// login page; protected handlers never run unauthenticated. This gate is
// applied per route group, never re-implemented inside handlers.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.sessions.Read(c.Request)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the authenticated identity set by
// RequireSession, or nil on public routes.
func CurrentIdentity(c *gin.Context) *session.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*session.Identity)
	if !ok {
		return nil
	}
	return identity
}
