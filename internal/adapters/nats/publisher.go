package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/core/ports"
)

// StreamName is the JetStream stream holding every spraylog event.
const StreamName = "SPRAYLOG"

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

func streamConfig() nats.StreamConfig {
	return nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{"spraylog.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   nats.FileStorage,
	}
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := streamConfig()
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) publishJSON(ctx context.Context, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(subject, data, nats.Context(ctx))
	return err
}

func (p *Publisher) PublishPaddock(ctx context.Context, subject string, paddock *domain.Paddock) error {
	return p.publishJSON(ctx, subject, paddock)
}

// DeletedEvent is the payload of spraylog.paddock.deleted.
type DeletedEvent struct {
	ID string `json:"id"`
}

func (p *Publisher) PublishPaddockDeleted(ctx context.Context, id string) error {
	return p.publishJSON(ctx, ports.SubjectPaddockDeleted, DeletedEvent{ID: id})
}

func (p *Publisher) PublishApplication(ctx context.Context, app *domain.Application) error {
	return p.publishJSON(ctx, ports.SubjectApplicationRecorded, app)
}

func (p *Publisher) PublishRecommendation(ctx context.Context, rec *domain.Recommendation) error {
	return p.publishJSON(ctx, ports.SubjectRecommendationCreated, rec)
}

// Ping reports whether the connection is currently usable.
func (p *Publisher) Ping(ctx context.Context) error {
	if !p.conn.IsConnected() {
		return fmt.Errorf("nats: %s", p.conn.Status())
	}
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
