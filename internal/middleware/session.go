package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionHeader carries the anonymous session identifier that scopes all
// stored state. There are no accounts; a client that omits the header is
// minted a fresh session and told about it in the response.
const SessionHeader = "X-Session-ID"

func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Get(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		c.Locals("session_id", sessionID)
		c.Set(SessionHeader, sessionID)

		return c.Next()
	}
}

// SessionID returns the session identifier placed by the Session middleware.
func SessionID(c *fiber.Ctx) string {
	sessionID, _ := c.Locals("session_id").(string)
	return sessionID
}
