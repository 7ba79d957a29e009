package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"
)

// AccessHeader carries the shared dashboard password
const AccessHeader = "X-Access-Password"

// AccessGate rejects requests that do not present password. An empty
// password disables the gate. This is a shared-secret check, not an account
// system.
func AccessGate(password string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if password == "" {
			return c.Next()
		}

		given := c.Get(AccessHeader)
		if given == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized - password required",
			})
		}

		if !passwordMatches(given, password) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized - wrong password",
			})
		}

		return c.Next()
	}
}

func passwordMatches(given, want string) bool {
	return subtle.ConstantTimeCompare([]byte(given), []byte(want)) == 1
}
