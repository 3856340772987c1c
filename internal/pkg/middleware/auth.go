package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dltpay/paygate/internal/pkg/security"
)

const (
	KeyAdminID       = "ADMIN_ID"
	KeyAdminUsername = "ADMIN_USERNAME"
)

// RequireAdmin authenticates admin API requests via a bearer token issued by
// the login endpoint. Missing credentials return 401, bad or expired tokens 403.
func RequireAdmin(c *fiber.Ctx) error {
	token := extractBearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authorization token is required",
		})
	}

	claims, err := security.VerifyAdminToken(token, security.AdminTokenSecret())
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Invalid or expired token",
		})
	}

	c.Locals(KeyAdminID, claims.AdminID)
	c.Locals(KeyAdminUsername, claims.Username)

	return c.Next()
}

func extractBearerToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
