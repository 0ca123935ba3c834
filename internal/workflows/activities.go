package workflows

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/core/ports"
)

// ReportActivities holds the activity implementations for report delivery.
type ReportActivities struct {
	Mailer ports.Mailer
}

// SendReportEmail hands a rendered report to the SMTP mailer.
func (a *ReportActivities) SendReportEmail(ctx context.Context, msg domain.EmailMessage) error {
	if a.Mailer == nil {
		return fmt.Errorf("send report to %s: %w", msg.To, domain.ErrServiceUnavailable)
	}
	if err := a.Mailer.Send(ctx, &msg); err != nil {
		return fmt.Errorf("send report to %s: %w", msg.To, err)
	}
	slog.Info("report email delivered", "to", msg.To, "attachments", len(msg.Attachments))
	return nil
}
