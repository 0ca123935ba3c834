package postgres

import (
	"context"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// PaddockRepo implements ports.PaddockRepository with pgx.
type PaddockRepo struct {
	db *DB
}

// NewPaddockRepo creates a new PaddockRepo.
func NewPaddockRepo(db *DB) *PaddockRepo {
	return &PaddockRepo{db: db}
}

const paddockColumns = `id, name, farm, area, boundary, center_latitude, center_longitude, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaddock(row rowScanner) (*domain.Paddock, error) {
	var p domain.Paddock
	if err := row.Scan(
		&p.ID, &p.Name, &p.Farm, &p.Area, &p.Boundary,
		&p.CenterLatitude, &p.CenterLongitude, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert stores a new paddock.
func (r *PaddockRepo) Insert(ctx context.Context, p *domain.Paddock) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO paddocks (id, name, farm, area, boundary, center_latitude, center_longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.Name, p.Farm, p.Area, p.Boundary, p.CenterLatitude, p.CenterLongitude, p.CreatedAt)
	return err
}

// GetByID returns a paddock by id.
func (r *PaddockRepo) GetByID(ctx context.Context, id string) (*domain.Paddock, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+paddockColumns+` FROM paddocks WHERE id = $1`, id)
	p, err := scanPaddock(row)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// List returns every paddock in insertion order.
func (r *PaddockRepo) List(ctx context.Context) ([]domain.Paddock, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+paddockColumns+` FROM paddocks ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paddocks []domain.Paddock
	for rows.Next() {
		p, err := scanPaddock(rows)
		if err != nil {
			return nil, err
		}
		paddocks = append(paddocks, *p)
	}
	return paddocks, rows.Err()
}

// Update overwrites the mutable columns of an existing paddock.
func (r *PaddockRepo) Update(ctx context.Context, p *domain.Paddock) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE paddocks
		SET name = $2, farm = $3, area = $4, boundary = $5,
		    center_latitude = $6, center_longitude = $7
		WHERE id = $1
	`, p.ID, p.Name, p.Farm, p.Area, p.Boundary, p.CenterLatitude, p.CenterLongitude)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a paddock and reports whether a row was deleted.
func (r *PaddockRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM paddocks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
