package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/core/ports"
	"github.com/samirrijal/spraylog/internal/pkg/metrics"
)

// ApplicationService records spray applications. Records are immutable once
// stored.
type ApplicationService struct {
	apps     ports.ApplicationRepository
	paddocks ports.PaddockRepository
	events   ports.EventPublisher
}

// NewApplicationService creates a new ApplicationService. events may be nil.
func NewApplicationService(apps ports.ApplicationRepository, paddocks ports.PaddockRepository, events ports.EventPublisher) *ApplicationService {
	return &ApplicationService{apps: apps, paddocks: paddocks, events: events}
}

// Create validates and stores an application. Every referenced paddock must
// exist at the time of recording.
func (s *ApplicationService) Create(ctx context.Context, in domain.ApplicationInput) (*domain.Application, error) {
	if err := validateApplicationInput(&in); err != nil {
		return nil, err
	}

	ids := dedupe(in.PaddockIDs)
	for _, id := range ids {
		if _, err := s.paddocks.GetByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Invalid("paddockIds", "paddock %s does not exist", id)
			}
			return nil, fmt.Errorf("check paddock %s: %w", id, err)
		}
	}

	chems := in.Chemicals
	if chems == nil {
		chems = []domain.Chemical{}
	}
	app := &domain.Application{
		ID:              uuid.New().String(),
		PaddockIDs:      ids,
		Operator:        in.Operator,
		Farm:            in.Farm,
		ApplicationDate: in.ApplicationDate.UTC(),
		WaterRate:       in.WaterRate,
		Area:            in.Area,
		Chemicals:       chems,
		Weather:         in.Weather,
		GPS:             in.GPS,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.apps.Insert(ctx, app); err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}

	metrics.ApplicationsRecorded.Inc()
	slog.InfoContext(ctx, "application recorded",
		"application_id", app.ID, "paddocks", len(app.PaddockIDs), "chemicals", len(app.Chemicals))
	if s.events != nil {
		recordPublish(ctx, ports.SubjectApplicationRecorded, s.events.PublishApplication(ctx, app))
	}
	return app, nil
}

// Get returns a single application or domain.ErrNotFound.
func (s *ApplicationService) Get(ctx context.Context, id string) (*domain.Application, error) {
	return s.apps.GetByID(ctx, id)
}

// List returns every application in recording order.
func (s *ApplicationService) List(ctx context.Context) ([]domain.Application, error) {
	apps, err := s.apps.List(ctx)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

// Page returns a window of List plus the total count. limit <= 0 means all.
func (s *ApplicationService) Page(ctx context.Context, offset, limit int) ([]domain.Application, int, error) {
	apps, err := s.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	total := len(apps)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return apps[offset:end], total, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
