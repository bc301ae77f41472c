package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the anonymous session id used for
// click attribution. There is no authentication attached to it.
const SessionCookie = "chatads_session"

// SessionHeader lets API clients supply their own session id.
const SessionHeader = "X-Session-ID"

// SessionID assigns every request an anonymous session id, preferring (in
// order) the X-Session-ID header, an existing cookie, or a fresh UUID. The
// id is stored in Locals("session_id") for handlers.
func SessionID() fiber.Handler {
	return func(c fiber.Ctx) error {
		sid := c.Get(SessionHeader)
		if sid == "" {
			sid = c.Cookies(SessionCookie)
		}
		if sid == "" {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}
		c.Locals("session_id", sid)
		return c.Next()
	}
}
