package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/spraylog/internal/pkg/metrics"
)

const requestTimeout = 15 * time.Second

func withTimeout(h fiber.Handler) fiber.Handler {
	return timeout.NewWithContext(h, requestTimeout)
}

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestLoggerMiddleware())
	app.Use(AccessLogMiddleware())

	// Rate limiting: 300 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout)
	app.Get("/health", HealthHandler())
	app.Get("/ready", ReadyHandler(deps))

	api := app.Group("/api")

	// Static paths are registered before their :id siblings.
	api.Get("/paddocks", withTimeout(ListPaddocksHandler(deps)))
	api.Get("/paddocks.geojson", withTimeout(PaddocksGeoJSONHandler(deps)))
	api.Post("/paddocks", withTimeout(CreatePaddockHandler(deps)))
	api.Get("/paddocks/:id", withTimeout(GetPaddockHandler(deps)))
	api.Get("/paddocks/:id/geojson", withTimeout(PaddockGeoJSONHandler(deps)))
	api.Patch("/paddocks/:id", withTimeout(UpdatePaddockHandler(deps)))
	api.Delete("/paddocks/:id", withTimeout(DeletePaddockHandler(deps)))

	api.Get("/applications", withTimeout(ListApplicationsHandler(deps)))
	api.Post("/applications", withTimeout(CreateApplicationHandler(deps)))
	api.Get("/applications/export.pdf", withTimeout(BatchReportHandler(deps)))
	api.Get("/applications/export.xlsx", withTimeout(RegisterExportHandler(deps)))
	api.Post("/applications/export/send-email", withTimeout(EmailBatchHandler(deps)))
	api.Get("/applications/:id", withTimeout(GetApplicationHandler(deps)))
	api.Get("/applications/:id/report.pdf", withTimeout(ApplicationReportHandler(deps)))
	api.Post("/applications/:id/send-email", withTimeout(EmailApplicationHandler(deps)))
	api.Get("/applications/:id/recommendations", withTimeout(ListRecommendationsHandler(deps)))
	api.Post("/applications/:id/recommendations", withTimeout(CreateRecommendationHandler(deps)))

	// GraphQL
	app.Post("/graphql", withTimeout(GraphQLHandler(deps)))

	specPath := deps.SpecPath
	if specPath == "" {
		specPath = DefaultSpecPath
	}
	SetupDocs(app, specPath)

	// WebSocket event relay
	if deps.NATS != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
	}
}
