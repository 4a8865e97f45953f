package credentials

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by RequireAuth for downstream handlers.
const (
	LocalUserID    = "userId"
	LocalUserEmail = "userEmail"
)

// RequireAuth returns a Fiber middleware that validates a "Bearer <token>"
// Authorization header via the codec. On success it stores the subject's id
// and email in the request locals and passes the request on.
func RequireAuth(codec *Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Missing Authorization header"})
		}
		identity, err := codec.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}
		c.Locals(LocalUserID, identity.ID.String())
		c.Locals(LocalUserEmail, identity.Email)
		return c.Next()
	}
}
