package postgres

import (
	"context"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// RecommendationRepo implements ports.RecommendationRepository with pgx.
type RecommendationRepo struct {
	db *DB
}

// NewRecommendationRepo creates a new RecommendationRepo.
func NewRecommendationRepo(db *DB) *RecommendationRepo {
	return &RecommendationRepo{db: db}
}

func (r *RecommendationRepo) Insert(ctx context.Context, rec *domain.Recommendation) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO recommendations (id, application_id, author, note, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.ApplicationID, rec.Author, rec.Note, string(rec.Priority), rec.CreatedAt)
	return err
}

func (r *RecommendationRepo) ListByApplication(ctx context.Context, applicationID string) ([]domain.Recommendation, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, application_id, author, note, priority, created_at
		FROM recommendations
		WHERE application_id = $1
		ORDER BY seq
	`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.Recommendation
	for rows.Next() {
		var rec domain.Recommendation
		var priority string
		if err := rows.Scan(&rec.ID, &rec.ApplicationID, &rec.Author, &rec.Note, &priority, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Priority = domain.Priority(priority)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
