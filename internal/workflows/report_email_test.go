package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

type stubMailer struct {
	calls int
	got   *domain.EmailMessage
	err   error
}

func (m *stubMailer) Send(ctx context.Context, msg *domain.EmailMessage) error {
	m.calls++
	m.got = msg
	return m.err
}

func reportMessage() domain.EmailMessage {
	return domain.EmailMessage{
		To:      "auditor@example.com",
		Subject: "Spray Application Report",
		Body:    "Attached.",
		Attachments: []domain.Attachment{
			{Filename: "spray-report-a1.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.3")},
		},
	}
}

func TestReportEmailWorkflow_Delivers(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	mailer := &stubMailer{}
	env.RegisterActivity(&ReportActivities{Mailer: mailer})

	env.ExecuteWorkflow(ReportEmailWorkflow, reportMessage())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	assert.Equal(t, 1, mailer.calls)
	require.NotNil(t, mailer.got)
	assert.Equal(t, "auditor@example.com", mailer.got.To)
	require.Len(t, mailer.got.Attachments, 1)
	assert.Equal(t, []byte("%PDF-1.3"), mailer.got.Attachments[0].Data)
}

func TestReportEmailWorkflow_FailureIsNotRetried(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	mailer := &stubMailer{err: errors.New("smtp: 550 mailbox unavailable")}
	env.RegisterActivity(&ReportActivities{Mailer: mailer})

	env.ExecuteWorkflow(ReportEmailWorkflow, reportMessage())

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mailbox unavailable")
	assert.Equal(t, 1, mailer.calls)
}

func TestSendReportEmail_NoMailer(t *testing.T) {
	a := &ReportActivities{}
	err := a.SendReportEmail(context.Background(), reportMessage())
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}
