package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/core/ports"
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn    *nats.Conn
	js      nats.JetStreamContext
	durable string
	subs    []*nats.Subscription
}

// NewSubscriber creates a subscriber whose consumers are named after durable.
func NewSubscriber(url, durable string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js, durable: durable}, nil
}

// SubscribeApplications delivers every recorded application to handler.
// Messages are acked only after handler succeeds and redelivered at most
// three times.
func (s *Subscriber) SubscribeApplications(ctx context.Context, handler func(ctx context.Context, app *domain.Application) error) error {
	sub, err := s.js.Subscribe(ports.SubjectApplicationRecorded, func(msg *nats.Msg) {
		var app domain.Application
		if err := json.Unmarshal(msg.Data, &app); err != nil {
			// Poison message: redelivery cannot fix it.
			_ = msg.Term()
			return
		}
		if err := handler(ctx, &app); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(s.durable+"-applications"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
