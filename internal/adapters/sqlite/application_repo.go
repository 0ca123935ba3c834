package sqlite

import (
	"context"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// ApplicationRepo implements ports.ApplicationRepository on SQLite.
type ApplicationRepo struct {
	db *DB
}

func NewApplicationRepo(db *DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

func (r *ApplicationRepo) Insert(ctx context.Context, a *domain.Application) error {
	return r.db.gorm.WithContext(ctx).Create(newApplicationModel(a)).Error
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	var m applicationModel
	if err := r.db.gorm.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	a := m.toDomain()
	return &a, nil
}

func (r *ApplicationRepo) List(ctx context.Context) ([]domain.Application, error) {
	var rows []applicationModel
	if err := r.db.gorm.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, err
	}
	apps := make([]domain.Application, 0, len(rows))
	for i := range rows {
		apps = append(apps, rows[i].toDomain())
	}
	return apps, nil
}

// RecommendationRepo implements ports.RecommendationRepository on SQLite.
type RecommendationRepo struct {
	db *DB
}

func NewRecommendationRepo(db *DB) *RecommendationRepo {
	return &RecommendationRepo{db: db}
}

func (r *RecommendationRepo) Insert(ctx context.Context, rec *domain.Recommendation) error {
	return r.db.gorm.WithContext(ctx).Create(&recommendationModel{
		ID:            rec.ID,
		ApplicationID: rec.ApplicationID,
		Author:        rec.Author,
		Note:          rec.Note,
		Priority:      string(rec.Priority),
		CreatedAt:     rec.CreatedAt,
	}).Error
}

func (r *RecommendationRepo) ListByApplication(ctx context.Context, applicationID string) ([]domain.Recommendation, error) {
	var rows []recommendationModel
	err := r.db.gorm.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("seq").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	recs := make([]domain.Recommendation, 0, len(rows))
	for _, m := range rows {
		recs = append(recs, domain.Recommendation{
			ID:            m.ID,
			ApplicationID: m.ApplicationID,
			Author:        m.Author,
			Note:          m.Note,
			Priority:      domain.Priority(m.Priority),
			CreatedAt:     m.CreatedAt.UTC(),
		})
	}
	return recs, nil
}
