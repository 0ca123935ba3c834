package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/spraylog/internal/adapters/http"
	"github.com/samirrijal/spraylog/internal/adapters/memory"
	natsadapter "github.com/samirrijal/spraylog/internal/adapters/nats"
	"github.com/samirrijal/spraylog/internal/adapters/report"
	"github.com/samirrijal/spraylog/internal/adapters/smtp"
	"github.com/samirrijal/spraylog/internal/adapters/storage"
	"github.com/samirrijal/spraylog/internal/adapters/temporal"
	"github.com/samirrijal/spraylog/internal/adapters/valkey"
	"github.com/samirrijal/spraylog/internal/core/ports"
	"github.com/samirrijal/spraylog/internal/core/usecases"
	"github.com/samirrijal/spraylog/internal/pkg/config"
	"github.com/samirrijal/spraylog/internal/pkg/logging"
	"github.com/samirrijal/spraylog/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("spraylog-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Telemetry.ServiceName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, telemetry.Config{
			ServiceName: cfg.Telemetry.ServiceName,
			Exporter:    cfg.Telemetry.Exporter,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			SampleRatio: cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	store, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer store.Close()
	go store.ReportPoolMetrics(ctx, 15*time.Second)

	// Cache: valkey when reachable, otherwise a per-process cache
	var cache ports.CacheService = memory.NewCache()
	var cacheProbe http.Pinger
	if vc, err := valkey.New(cfg.Valkey.Addr); err != nil {
		slog.Warn("valkey unavailable, using in-process cache", "error", err)
	} else {
		defer vc.Close()
		cache, cacheProbe = vc, vc
	}

	// NATS
	var events ports.EventPublisher
	var eventsProbe http.Pinger
	if pub, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, events disabled", "error", err)
	} else {
		defer pub.Close()
		events, eventsProbe = pub, pub
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	} else {
		defer natsConn.Close()
	}

	// Email
	mailer, closeMailer := newMailer(cfg)
	defer closeMailer()

	// Use cases
	paddockSvc := usecases.NewPaddockService(store.Paddocks, events, cache)
	applicationSvc := usecases.NewApplicationService(store.Applications, store.Paddocks, events)
	recommendationSvc := usecases.NewRecommendationService(store.Recommendations, events)
	reportSvc := usecases.NewReportService(store.Applications, store.Paddocks,
		report.NewRenderer(time.Local), report.NewRegisterWriter(), mailer)

	deps := &http.Dependencies{
		Paddocks:        paddockSvc,
		Applications:    applicationSvc,
		Recommendations: recommendationSvc,
		Reports:         reportSvc,
		NATS:            natsConn,
		Database:        store,
		Cache:           cacheProbe,
		Events:          eventsProbe,
		SpecPath:        http.DefaultSpecPath,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		AppName:      "Spraylog API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, If-None-Match",
		ExposeHeaders:    "ETag, Link, X-Total-Count, X-Request-ID",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "driver", store.Driver, "email", mailer != nil)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// newMailer picks the report delivery path. A nil mailer makes the
// send-email endpoints answer service_unavailable.
func newMailer(cfg *config.Config) (ports.Mailer, func()) {
	noop := func() {}
	if !cfg.EmailEnabled() {
		slog.Info("report email disabled")
		return nil, noop
	}

	switch cfg.Email.Dispatch {
	case config.DispatchTemporal:
		c, err := temporal.Dial(cfg.Temporal.HostPort, cfg.Temporal.Namespace)
		if err != nil {
			slog.Warn("temporal unavailable, report email disabled", "error", err)
			return nil, noop
		}
		return temporal.NewMailer(c, cfg.Temporal.TaskQueue), c.Close

	default:
		m, err := smtp.New(smtpConfig(cfg.Email))
		if err != nil {
			slog.Warn("smtp misconfigured, report email disabled", "error", err)
			return nil, noop
		}
		return m, noop
	}
}

func smtpConfig(e config.EmailConfig) smtp.Config {
	return smtp.Config{
		Host:     e.SMTPHost,
		Port:     e.SMTPPort,
		Username: e.Username,
		Password: e.Password,
		From:     e.From,
	}
}
