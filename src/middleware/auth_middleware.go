package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-Pulse-Feed/src/lib"
	"github.com/theleywin/Backend-Pulse-Feed/src/session"
)

// SessionGuard protects routes behind an authenticated session. Browser
// routes and API routes reject differently, so it exposes one policy for
// each surface.
type SessionGuard struct {
	Sessions *session.Store
}

func NewSessionGuard(sessions *session.Store) *SessionGuard {
	return &SessionGuard{Sessions: sessions}
}

// RequireWeb redirects unauthenticated requests to the login page.
func (g *SessionGuard) RequireWeb(c *fiber.Ctx) error {
	rec := g.Sessions.Current(c)
	if !rec.Authenticated() {
		return c.Redirect("/login")
	}

	return c.Next()
}

// RequireAPI rejects unauthenticated requests with a 401 JSON error.
func (g *SessionGuard) RequireAPI(c *fiber.Ctx) error {
	rec := g.Sessions.Current(c)
	if !rec.Authenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.ErrorResponse("Unauthorized"))
	}

	return c.Next()
}
