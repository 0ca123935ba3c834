package memory

import (
	"context"
	"sync"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// RecommendationRepo implements ports.RecommendationRepository in memory.
type RecommendationRepo struct {
	mu    sync.RWMutex
	byApp map[string][]domain.Recommendation
}

// NewRecommendationRepo creates an empty RecommendationRepo.
func NewRecommendationRepo() *RecommendationRepo {
	return &RecommendationRepo{byApp: make(map[string][]domain.Recommendation)}
}

func (r *RecommendationRepo) Insert(ctx context.Context, rec *domain.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byApp[rec.ApplicationID] = append(r.byApp[rec.ApplicationID], *rec)
	return nil
}

func (r *RecommendationRepo) ListByApplication(ctx context.Context, applicationID string) ([]domain.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Recommendation{}, r.byApp[applicationID]...), nil
}
