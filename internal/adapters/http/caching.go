package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets default Cache-Control headers on GET responses.
// Records are mutable, so API responses are never stored by shared caches.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet {
			return err
		}
		if c.GetRespHeader(fiber.HeaderCacheControl) != "" {
			return err
		}

		path := c.Path()
		var value string
		switch {
		case path == "/health" || path == "/ready" || path == "/metrics":
			value = "no-cache"
		case strings.HasPrefix(path, "/docs"):
			value = "public, max-age=3600"
		case strings.HasSuffix(path, ".pdf") || strings.HasSuffix(path, ".xlsx"):
			value = "private, no-store"
		case strings.HasPrefix(path, "/api/"):
			value = "private, no-cache"
		}

		if value != "" {
			c.Set(fiber.HeaderCacheControl, value)
		}
		return err
	}
}
