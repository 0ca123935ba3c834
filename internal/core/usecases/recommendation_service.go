package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/core/ports"
	"github.com/samirrijal/spraylog/internal/pkg/metrics"
)

// RecommendationService handles agronomist notes attached to applications.
type RecommendationService struct {
	recs   ports.RecommendationRepository
	events ports.EventPublisher
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(recs ports.RecommendationRepository, events ports.EventPublisher) *RecommendationService {
	return &RecommendationService{recs: recs, events: events}
}

// Create stores a recommendation for applicationID. Priority defaults to
// medium. The application is referenced by id only and is not looked up.
func (s *RecommendationService) Create(ctx context.Context, applicationID string, in domain.RecommendationInput) (*domain.Recommendation, error) {
	if err := requireText("applicationId", applicationID); err != nil {
		return nil, err
	}
	if err := requireText("author", in.Author); err != nil {
		return nil, err
	}
	if err := requireText("note", in.Note); err != nil {
		return nil, err
	}
	priority := domain.Priority(strings.ToLower(strings.TrimSpace(string(in.Priority))))
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domain.Invalid("priority", "must be low, medium or high")
	}

	rec := &domain.Recommendation{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		Author:        in.Author,
		Note:          in.Note,
		Priority:      priority,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.recs.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert recommendation: %w", err)
	}

	metrics.RecommendationsCreated.WithLabelValues(string(priority)).Inc()
	if s.events != nil {
		recordPublish(ctx, ports.SubjectRecommendationCreated, s.events.PublishRecommendation(ctx, rec))
	}
	return rec, nil
}

// List returns recommendations for an application, oldest first.
func (s *RecommendationService) List(ctx context.Context, applicationID string) ([]domain.Recommendation, error) {
	recs, err := s.recs.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}
	return recs, nil
}
