package smtp

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// Config describes the outbound SMTP relay.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer implements ports.Mailer by delivering through an SMTP relay.
type Mailer struct {
	cfg  Config
	opts []mail.Option
}

// New validates cfg and prepares client options. Connections are opened per
// message.
func New(cfg Config) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(20 * time.Second),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	return &Mailer{cfg: cfg, opts: opts}, nil
}

// Send builds the MIME message and delivers it.
func (m *Mailer) Send(ctx context.Context, msg *domain.EmailMessage) error {
	out, err := BuildMessage(m.cfg.From, msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host, m.opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

// BuildMessage converts a domain message into a go-mail message.
func BuildMessage(from string, msg *domain.EmailMessage) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.From(from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, domain.Invalid("email", "%v", err)
	}
	out.Subject(msg.Subject)
	out.SetDate()
	out.SetBodyString(mail.TypeTextPlain, msg.Body)

	for _, a := range msg.Attachments {
		if err := out.AttachReader(a.Filename, bytes.NewReader(a.Data),
			mail.WithFileContentType(mail.ContentType(a.ContentType))); err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Filename, err)
		}
	}
	return out, nil
}
