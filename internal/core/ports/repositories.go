package ports

import (
	"context"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// PaddockRepository persists paddocks. Lookups of absent ids return
// domain.ErrNotFound. Validation happens before records reach storage.
type PaddockRepository interface {
	Insert(ctx context.Context, paddock *domain.Paddock) error
	GetByID(ctx context.Context, id string) (*domain.Paddock, error)
	// List returns every paddock in insertion order.
	List(ctx context.Context) ([]domain.Paddock, error)
	// Update replaces the stored record with the same ID.
	Update(ctx context.Context, paddock *domain.Paddock) error
	// Delete reports whether a record existed and was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// ApplicationRepository persists spray applications. Records are append-only.
type ApplicationRepository interface {
	Insert(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context) ([]domain.Application, error)
}

// RecommendationRepository persists agronomist recommendations.
type RecommendationRepository interface {
	Insert(ctx context.Context, rec *domain.Recommendation) error
	ListByApplication(ctx context.Context, applicationID string) ([]domain.Recommendation, error)
}
