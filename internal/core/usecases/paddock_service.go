package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/core/ports"
	"github.com/samirrijal/spraylog/internal/pkg/geospatial"
	"github.com/samirrijal/spraylog/internal/pkg/metrics"
	"github.com/samirrijal/spraylog/internal/pkg/telemetry"
)

// PaddockService owns paddock validation, identity assignment, partial
// updates and proximity ranking. Storage adapters only persist records.
type PaddockService struct {
	paddocks ports.PaddockRepository
	events   ports.EventPublisher
	cache    genCache
}

// NewPaddockService creates a new PaddockService. events and cache may be nil.
func NewPaddockService(paddocks ports.PaddockRepository, events ports.EventPublisher, cache ports.CacheService) *PaddockService {
	return &PaddockService{
		paddocks: paddocks,
		events:   events,
		cache:    genCache{cache: cache, prefix: "paddocks", ttl: 600},
	}
}

// Create validates input and stores a new paddock. The stored center is
// always the centroid of the boundary.
func (s *PaddockService) Create(ctx context.Context, in domain.PaddockInput) (*domain.Paddock, error) {
	if err := requireText("name", in.Name); err != nil {
		return nil, err
	}
	if err := requireText("farm", in.Farm); err != nil {
		return nil, err
	}
	if err := validateArea(in.Area); err != nil {
		return nil, err
	}
	boundary, err := geospatial.ValidateBoundary(in.Boundary)
	if err != nil {
		return nil, err
	}
	if err := validateOptionalCenter(in.CenterLatitude, in.CenterLongitude); err != nil {
		return nil, err
	}
	center, err := geospatial.Centroid(boundary)
	if err != nil {
		return nil, err
	}

	p := &domain.Paddock{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Farm:            in.Farm,
		Area:            in.Area,
		Boundary:        boundary,
		CenterLatitude:  center.Latitude,
		CenterLongitude: center.Longitude,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.paddocks.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("insert paddock: %w", err)
	}

	s.cache.bump(ctx)
	metrics.PaddockMutations.WithLabelValues("create").Inc()
	slog.InfoContext(ctx, "paddock created", "paddock_id", p.ID, "farm", p.Farm, "points", len(p.Boundary))
	s.publish(ctx, ports.SubjectPaddockCreated, p)
	return p, nil
}

// Get returns a single paddock or domain.ErrNotFound.
func (s *PaddockService) Get(ctx context.Context, id string) (*domain.Paddock, error) {
	key := s.cache.key(ctx, "id", id)
	var cached domain.Paddock
	if s.cache.load(ctx, "paddock_get", key, &cached) {
		return &cached, nil
	}

	p, err := s.paddocks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.store(ctx, key, p)
	return p, nil
}

// List returns every paddock in insertion order.
func (s *PaddockService) List(ctx context.Context) ([]domain.Paddock, error) {
	key := s.cache.key(ctx, "list")
	var cached []domain.Paddock
	if s.cache.load(ctx, "paddock_list", key, &cached) {
		return cached, nil
	}

	paddocks, err := s.paddocks.List(ctx)
	if err != nil {
		return nil, err
	}
	if paddocks == nil {
		paddocks = []domain.Paddock{}
	}
	s.cache.store(ctx, key, paddocks)
	return paddocks, nil
}

// Update applies the fields present in patch. An empty patch is rejected
// before the record is looked up. A new boundary re-derives the center;
// explicit center fields only apply when the boundary is unchanged.
func (s *PaddockService) Update(ctx context.Context, id string, patch domain.PaddockPatch) (*domain.Paddock, error) {
	if patch.IsEmpty() {
		return nil, domain.Invalid("", "update payload must contain at least one field")
	}
	if patch.Name != nil {
		if err := requireText("name", *patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Farm != nil {
		if err := requireText("farm", *patch.Farm); err != nil {
			return nil, err
		}
	}
	if patch.Area != nil {
		if err := validateArea(*patch.Area); err != nil {
			return nil, err
		}
	}
	if patch.CenterLatitude != nil {
		if err := geospatial.ValidateCoordinate(*patch.CenterLatitude, 0); err != nil {
			return nil, err
		}
	}
	if patch.CenterLongitude != nil {
		if err := geospatial.ValidateCoordinate(0, *patch.CenterLongitude); err != nil {
			return nil, err
		}
	}
	var boundary []domain.GeoPoint
	if patch.Boundary != nil {
		var err error
		if boundary, err = geospatial.ValidateBoundary(*patch.Boundary); err != nil {
			return nil, err
		}
	}

	p, err := s.paddocks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Farm != nil {
		p.Farm = *patch.Farm
	}
	if patch.Area != nil {
		p.Area = *patch.Area
	}

	lat, lng := p.CenterLatitude, p.CenterLongitude
	if patch.CenterLatitude != nil {
		lat = *patch.CenterLatitude
	}
	if patch.CenterLongitude != nil {
		lng = *patch.CenterLongitude
	}
	if boundary != nil {
		center, err := geospatial.Centroid(boundary)
		if err != nil {
			return nil, err
		}
		p.Boundary = boundary
		lat, lng = center.Latitude, center.Longitude
	}
	p.CenterLatitude, p.CenterLongitude = lat, lng

	if err := s.paddocks.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update paddock %s: %w", id, err)
	}

	s.cache.bump(ctx)
	metrics.PaddockMutations.WithLabelValues("update").Inc()
	slog.InfoContext(ctx, "paddock updated", "paddock_id", p.ID, "boundary_changed", boundary != nil)
	s.publish(ctx, ports.SubjectPaddockUpdated, p)
	return p, nil
}

// Delete removes a paddock and reports whether it existed. Applications
// that reference the paddock keep their ids.
func (s *PaddockService) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.paddocks.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete paddock %s: %w", id, err)
	}
	if !removed {
		return false, nil
	}

	s.cache.bump(ctx)
	metrics.PaddockMutations.WithLabelValues("delete").Inc()
	slog.InfoContext(ctx, "paddock deleted", "paddock_id", id)
	if s.events != nil {
		err := s.events.PublishPaddockDeleted(ctx, id)
		recordPublish(ctx, ports.SubjectPaddockDeleted, err)
	}
	return true, nil
}

// Proximity ranks every paddock by great-circle distance from (lat, lng),
// nearest first, with Distance set in km. A positive radiusKm drops
// paddocks further away than the radius.
func (s *PaddockService) Proximity(ctx context.Context, lat, lng, radiusKm float64) ([]domain.Paddock, error) {
	if err := geospatial.ValidateCoordinate(lat, lng); err != nil {
		return nil, err
	}
	if math.IsNaN(radiusKm) || radiusKm < 0 {
		return nil, domain.Invalid("radius_km", "must be a non-negative number")
	}

	ctx, span := telemetry.Tracer().Start(ctx, "PaddockService.Proximity")
	defer span.End()

	paddocks, err := s.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	start := time.Now()
	candidates := paddocks
	if radiusKm > 0 {
		candidates = geospatial.InBounds(paddocks, geospatial.BoundingBox(lat, lng, radiusKm))
	}
	ranked := geospatial.RankByDistance(candidates, lat, lng)
	if radiusKm > 0 {
		ranked = geospatial.WithinKm(ranked, radiusKm)
	}
	metrics.ProximityQueryDuration.Observe(time.Since(start).Seconds())

	span.SetAttributes(
		attribute.Int("paddocks.scanned", len(paddocks)),
		attribute.Int("paddocks.returned", len(ranked)),
	)
	return ranked, nil
}

func (s *PaddockService) publish(ctx context.Context, subject string, p *domain.Paddock) {
	if s.events == nil {
		return
	}
	recordPublish(ctx, subject, s.events.PublishPaddock(ctx, subject, p))
}

// recordPublish logs and counts the outcome of a best-effort event publish.
func recordPublish(ctx context.Context, subject string, err error) {
	if err != nil {
		metrics.EventsPublished.WithLabelValues(subject, "error").Inc()
		slog.WarnContext(ctx, "event publish failed", "subject", subject, "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues(subject, "ok").Inc()
}
