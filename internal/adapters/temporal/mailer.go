// Package temporal dispatches report emails through a Temporal workflow so
// delivery is recorded in workflow history and executed by cmd/mailer.
package temporal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/workflows"
)

// Dial connects to the Temporal frontend, logging through slog.
func Dial(hostPort, namespace string) (client.Client, error) {
	c, err := client.Dial(client.Options{
		HostPort:  hostPort,
		Namespace: namespace,
		Logger:    tlog.NewStructuredLogger(slog.Default()),
	})
	if err != nil {
		return nil, fmt.Errorf("temporal dial: %w", err)
	}
	return c, nil
}

// Mailer implements ports.Mailer by starting ReportEmailWorkflow and
// waiting for its result.
type Mailer struct {
	client    client.Client
	taskQueue string
}

func NewMailer(c client.Client, taskQueue string) *Mailer {
	return &Mailer{client: c, taskQueue: taskQueue}
}

func (m *Mailer) Send(ctx context.Context, msg *domain.EmailMessage) error {
	opts := client.StartWorkflowOptions{
		ID:        "report-email-" + uuid.NewString(),
		TaskQueue: m.taskQueue,
	}

	run, err := m.client.ExecuteWorkflow(ctx, opts, workflows.ReportEmailWorkflow, *msg)
	if err != nil {
		return fmt.Errorf("start report email workflow: %w", err)
	}
	if err := run.Get(ctx, nil); err != nil {
		return fmt.Errorf("report email workflow %s: %w", run.GetID(), err)
	}
	return nil
}
