package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"go.temporal.io/sdk/worker"

	natsadapter "github.com/samirrijal/spraylog/internal/adapters/nats"
	"github.com/samirrijal/spraylog/internal/adapters/report"
	"github.com/samirrijal/spraylog/internal/adapters/smtp"
	"github.com/samirrijal/spraylog/internal/adapters/storage"
	"github.com/samirrijal/spraylog/internal/adapters/temporal"
	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/core/usecases"
	"github.com/samirrijal/spraylog/internal/pkg/config"
	"github.com/samirrijal/spraylog/internal/pkg/logging"
	"github.com/samirrijal/spraylog/internal/workflows"
)

func main() {
	cfg, err := config.Load("spraylog-mailer")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Telemetry.ServiceName)

	if !cfg.EmailEnabled() {
		log.Fatalf("mailer: email.smtp_host must be set and email.dispatch must not be disabled")
	}
	mailer, err := smtp.New(smtp.Config{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	})
	if err != nil {
		log.Fatalf("smtp: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Email.ArchiveTo != "" {
		stop, err := startArchiver(ctx, cfg, mailer)
		if err != nil {
			slog.Warn("archive copies disabled", "error", err)
		} else {
			defer stop()
		}
	}

	// Connect to Temporal
	c, err := temporal.Dial(cfg.Temporal.HostPort, cfg.Temporal.Namespace)
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.ReportEmailWorkflow)
	w.RegisterActivity(&workflows.ReportActivities{Mailer: mailer})

	slog.Info("mailer worker started", "task_queue", cfg.Temporal.TaskQueue, "archive_to", cfg.Email.ArchiveTo)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}

// startArchiver mails an audit copy of every recorded application to
// email.archive_to. It needs a database shared with the API.
func startArchiver(ctx context.Context, cfg *config.Config, mailer *smtp.Mailer) (func(), error) {
	store, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if !store.Persistent() {
		store.Close()
		return nil, errors.New("the memory driver is not shared with the API")
	}

	reports := usecases.NewReportService(store.Applications, store.Paddocks,
		report.NewRenderer(time.Local), report.NewRegisterWriter(), mailer)

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL, "spraylog-mailer")
	if err != nil {
		store.Close()
		return nil, err
	}
	if err := sub.SubscribeApplications(ctx, archiveHandler(reports, cfg.Email.ArchiveTo)); err != nil {
		sub.Close()
		store.Close()
		return nil, err
	}

	return func() {
		sub.Close()
		store.Close()
	}, nil
}

type applicationEmailer interface {
	EmailApplication(ctx context.Context, id, to string) error
}

// archiveHandler sends one archive copy per application. Records missing
// from storage are acknowledged, since redelivery cannot make them appear.
func archiveHandler(reports applicationEmailer, to string) func(context.Context, *domain.Application) error {
	return func(ctx context.Context, app *domain.Application) error {
		err := reports.EmailApplication(ctx, app.ID, to)
		if errors.Is(err, domain.ErrNotFound) {
			slog.WarnContext(ctx, "archive skipped, application not in storage", "application_id", app.ID)
			return nil
		}
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "archive copy sent", "application_id", app.ID, "to", to)
		return nil
	}
}
