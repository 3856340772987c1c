package controllers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// fail sends the uniform error envelope used across the public API.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// resolveOrigin determines which partner site is calling: the Origin header
// when present, otherwise the scheme and host of the Referer, otherwise the
// Host header. The result keys the per-partner settlement contract lookup.
func resolveOrigin(c *fiber.Ctx) string {
	if origin := c.Get(fiber.HeaderOrigin); origin != "" {
		return origin
	}
	if referer := c.Get(fiber.HeaderReferer); referer != "" {
		if u, err := url.Parse(referer); err == nil && u.Host != "" {
			return u.Scheme + "://" + u.Host
		}
	}
	return c.Hostname()
}
