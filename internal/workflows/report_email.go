package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// ReportEmailWorkflow delivers one rendered audit report. Delivery runs
// exactly once; a failed send fails the workflow so the caller sees it.
func ReportEmailWorkflow(ctx workflow.Context, msg domain.EmailMessage) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting report email workflow", "to", msg.To)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	if err := workflow.ExecuteActivity(ctx, "SendReportEmail", msg).Get(ctx, nil); err != nil {
		logger.Warn("report email failed", "to", msg.To, "error", err)
		return err
	}

	logger.Info("Report email sent", "to", msg.To)
	return nil
}
