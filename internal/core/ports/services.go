package ports

import (
	"context"
	"io"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// Event subjects published on the broker.
const (
	SubjectPaddockCreated        = "spraylog.paddock.created"
	SubjectPaddockUpdated        = "spraylog.paddock.updated"
	SubjectPaddockDeleted        = "spraylog.paddock.deleted"
	SubjectApplicationRecorded   = "spraylog.application.recorded"
	SubjectRecommendationCreated = "spraylog.recommendation.created"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishPaddock(ctx context.Context, subject string, paddock *domain.Paddock) error
	PublishPaddockDeleted(ctx context.Context, id string) error
	PublishApplication(ctx context.Context, app *domain.Application) error
	PublishRecommendation(ctx context.Context, rec *domain.Recommendation) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeApplications(ctx context.Context, handler func(ctx context.Context, app *domain.Application) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
	// Incr atomically increments a counter and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
}

// Mailer delivers a rendered email.
type Mailer interface {
	Send(ctx context.Context, msg *domain.EmailMessage) error
}

// ReportRenderer produces audit PDFs.
type ReportRenderer interface {
	RenderApplication(w io.Writer, app *domain.Application, paddocks []domain.Paddock) error
	RenderBatch(w io.Writer, apps []domain.Application, paddocks map[string]domain.Paddock) error
}

// RegisterExporter writes the spray register as a spreadsheet.
type RegisterExporter interface {
	WriteRegister(w io.Writer, apps []domain.Application, paddocks map[string]domain.Paddock) error
}
