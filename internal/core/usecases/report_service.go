package usecases

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/core/ports"
	"github.com/samirrijal/spraylog/internal/pkg/metrics"
	"github.com/samirrijal/spraylog/internal/pkg/telemetry"
)

const pdfContentType = "application/pdf"

// ReportService renders audit documents and hands them to the mailer.
type ReportService struct {
	apps     ports.ApplicationRepository
	paddocks ports.PaddockRepository
	renderer ports.ReportRenderer
	register ports.RegisterExporter
	mailer   ports.Mailer
}

// NewReportService creates a new ReportService. A nil mailer means email is
// not configured and every send fails with domain.ErrServiceUnavailable.
func NewReportService(
	apps ports.ApplicationRepository,
	paddocks ports.PaddockRepository,
	renderer ports.ReportRenderer,
	register ports.RegisterExporter,
	mailer ports.Mailer,
) *ReportService {
	return &ReportService{apps: apps, paddocks: paddocks, renderer: renderer, register: register, mailer: mailer}
}

// EmailConfigured reports whether a mailer is wired in.
func (s *ReportService) EmailConfigured() bool { return s.mailer != nil }

// RenderApplication returns the audit PDF for one application.
func (s *ReportService) RenderApplication(ctx context.Context, id string) ([]byte, *domain.Application, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "ReportService.RenderApplication")
	defer span.End()

	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	paddocks, err := s.paddocksFor(ctx, app.PaddockIDs)
	if err != nil {
		return nil, nil, err
	}

	var ordered []domain.Paddock
	for _, pid := range app.PaddockIDs {
		if p, ok := paddocks[pid]; ok {
			ordered = append(ordered, p)
		}
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderApplication(&buf, app, ordered); err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("render application %s: %w", id, err)
	}
	metrics.ReportsRendered.WithLabelValues("pdf").Inc()
	return buf.Bytes(), app, nil
}

// RenderBatch returns one PDF covering the given applications, or every
// application when ids is empty.
func (s *ReportService) RenderBatch(ctx context.Context, ids []string) ([]byte, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "ReportService.RenderBatch")
	defer span.End()

	apps, paddocks, err := s.collect(ctx, ids)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderBatch(&buf, apps, paddocks); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("render batch: %w", err)
	}
	metrics.ReportsRendered.WithLabelValues("batch_pdf").Inc()
	return buf.Bytes(), nil
}

// ExportRegister returns the spray register workbook for every application.
func (s *ReportService) ExportRegister(ctx context.Context) ([]byte, error) {
	apps, paddocks, err := s.collect(ctx, nil)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.register.WriteRegister(&buf, apps, paddocks); err != nil {
		return nil, fmt.Errorf("write register: %w", err)
	}
	metrics.ReportsRendered.WithLabelValues("xlsx").Inc()
	return buf.Bytes(), nil
}

// EmailApplication mails the audit PDF for one application to `to`.
func (s *ReportService) EmailApplication(ctx context.Context, id, to string) error {
	addr, err := s.checkRecipient(to)
	if err != nil {
		return err
	}

	pdf, app, err := s.RenderApplication(ctx, id)
	if err != nil {
		return err
	}

	msg := &domain.EmailMessage{
		To:      addr,
		Subject: fmt.Sprintf("Spray application record - %s - %s", app.Farm, app.ApplicationDate.Format("2 Jan 2006")),
		Body: fmt.Sprintf("Attached is the spray application audit report for %s, applied by %s on %s.\n",
			app.Farm, app.Operator, app.ApplicationDate.Format("2 Jan 2006 15:04")),
		Attachments: []domain.Attachment{{
			Filename:    ApplicationReportFilename(app.ID),
			ContentType: pdfContentType,
			Data:        pdf,
		}},
	}
	return s.send(ctx, msg)
}

// EmailBatch mails one PDF covering every listed application and returns
// how many distinct applications it covered.
func (s *ReportService) EmailBatch(ctx context.Context, to string, ids []string) (int, error) {
	addr, err := s.checkRecipient(to)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, domain.Invalid("applications", "at least one application id is required")
	}

	pdf, err := s.RenderBatch(ctx, ids)
	if err != nil {
		return 0, err
	}

	n := len(dedupe(ids))
	msg := &domain.EmailMessage{
		To:      addr,
		Subject: fmt.Sprintf("Spray application records (%d)", n),
		Body:    fmt.Sprintf("Attached is the audit report covering %d spray application(s).\n", n),
		Attachments: []domain.Attachment{{
			Filename:    BatchReportFilename(time.Now()),
			ContentType: pdfContentType,
			Data:        pdf,
		}},
	}
	if err := s.send(ctx, msg); err != nil {
		return 0, err
	}
	return n, nil
}

// ApplicationReportFilename names the single-application PDF.
func ApplicationReportFilename(id string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return "spray-application-" + short + ".pdf"
}

// BatchReportFilename names the batch PDF.
func BatchReportFilename(at time.Time) string {
	return "spray-applications-" + at.Format("2006-01-02") + ".pdf"
}

func (s *ReportService) checkRecipient(to string) (string, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return "", domain.Invalid("email", "is required")
	}
	addr, err := mail.ParseAddress(to)
	if err != nil {
		return "", domain.Invalid("email", "%q is not a valid address", to)
	}
	if s.mailer == nil {
		return "", fmt.Errorf("email is not configured: %w", domain.ErrServiceUnavailable)
	}
	return addr.Address, nil
}

func (s *ReportService) send(ctx context.Context, msg *domain.EmailMessage) error {
	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.EmailsSent.WithLabelValues("error").Inc()
		slog.ErrorContext(ctx, "report email failed", "to", msg.To, "error", err)
		return fmt.Errorf("send report email: %w", err)
	}
	metrics.EmailsSent.WithLabelValues("ok").Inc()
	slog.InfoContext(ctx, "report email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (s *ReportService) collect(ctx context.Context, ids []string) ([]domain.Application, map[string]domain.Paddock, error) {
	var apps []domain.Application
	if len(ids) == 0 {
		all, err := s.apps.List(ctx)
		if err != nil {
			return nil, nil, err
		}
		apps = all
	} else {
		for _, id := range dedupe(ids) {
			app, err := s.apps.GetByID(ctx, id)
			if err != nil {
				return nil, nil, fmt.Errorf("application %s: %w", id, err)
			}
			apps = append(apps, *app)
		}
	}

	var pids []string
	for _, a := range apps {
		pids = append(pids, a.PaddockIDs...)
	}
	paddocks, err := s.paddocksFor(ctx, pids)
	if err != nil {
		return nil, nil, err
	}
	return apps, paddocks, nil
}

// paddocksFor resolves paddock ids, skipping ones deleted since recording.
func (s *ReportService) paddocksFor(ctx context.Context, ids []string) (map[string]domain.Paddock, error) {
	out := make(map[string]domain.Paddock)
	for _, id := range dedupe(ids) {
		p, err := s.paddocks.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[id] = *p
	}
	return out, nil
}
