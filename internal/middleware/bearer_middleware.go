package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BearerTokenKey is the fiber locals key under which the raw bearer token is
// stored.
const BearerTokenKey = "bearer_token"

// BearerToken extracts the raw token from the Authorization header into the
// request locals and always continues. Whether the token authorizes an
// operation is decided by the service layer, not by the transport; reads
// need no credential at all.
func BearerToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				c.Locals(BearerTokenKey, parts[1])
			}
		}
		return c.Next()
	}
}

// TokenFromContext returns the bearer token stored by BearerToken, or an
// empty string when the request carried none.
func TokenFromContext(c *fiber.Ctx) string {
	token, _ := c.Locals(BearerTokenKey).(string)
	return token
}
