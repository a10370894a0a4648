package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/studiosadmin/admin-console/internal/domain"
)

const sessionKey = "auth_session"

// SessionMiddleware resolves the cookie session when one is present.
type SessionMiddleware struct {
	tokens *TokenManager
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens}
}

// Handle attaches the session to the request. Missing or invalid tokens
// leave the request anonymous; guards decide whether that is acceptable.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	if session, ok := m.Resolve(c); ok {
		c.Locals(sessionKey, session)
	}
	return c.Next()
}

// Resolve parses the session cookie without touching request locals.
func (m *SessionMiddleware) Resolve(c *fiber.Ctx) (*domain.Session, bool) {
	raw := c.Cookies(CookieName)
	if raw == "" {
		return nil, false
	}
	session, err := m.tokens.ParseToken(raw)
	if err != nil {
		return nil, false
	}
	return session, true
}

// SessionFromContext retrieves the authenticated session.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*domain.Session)
	return session, ok
}
