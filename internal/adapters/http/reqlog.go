package http

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

type loggerCtxKey struct{}

// RequestLoggerMiddleware stores a logger tagged with the request id in the
// user context. Services pick it up through LoggerFromCtx, so every record
// written while serving a request can be joined on request_id.
func RequestLoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		logger := slog.Default()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			logger = logger.With("request_id", rid)
		}
		c.SetUserContext(WithLogger(c.UserContext(), logger))
		return c.Next()
	}
}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// LoggerFromCtx returns the request logger, or slog.Default outside a request.
func LoggerFromCtx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
