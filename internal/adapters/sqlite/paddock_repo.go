package sqlite

import (
	"context"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// PaddockRepo implements ports.PaddockRepository on SQLite.
type PaddockRepo struct {
	db *DB
}

func NewPaddockRepo(db *DB) *PaddockRepo {
	return &PaddockRepo{db: db}
}

func (r *PaddockRepo) Insert(ctx context.Context, p *domain.Paddock) error {
	return r.db.gorm.WithContext(ctx).Create(newPaddockModel(p)).Error
}

func (r *PaddockRepo) GetByID(ctx context.Context, id string) (*domain.Paddock, error) {
	var m paddockModel
	if err := r.db.gorm.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	p := m.toDomain()
	return &p, nil
}

func (r *PaddockRepo) List(ctx context.Context) ([]domain.Paddock, error) {
	var rows []paddockModel
	if err := r.db.gorm.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, err
	}
	paddocks := make([]domain.Paddock, 0, len(rows))
	for i := range rows {
		paddocks = append(paddocks, rows[i].toDomain())
	}
	return paddocks, nil
}

// Update writes every mutable column, zero values included.
func (r *PaddockRepo) Update(ctx context.Context, p *domain.Paddock) error {
	res := r.db.gorm.WithContext(ctx).
		Model(&paddockModel{}).
		Where("id = ?", p.ID).
		Select("name", "farm", "area", "boundary", "center_latitude", "center_longitude").
		Updates(newPaddockModel(p))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PaddockRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.gorm.WithContext(ctx).Where("id = ?", id).Delete(&paddockModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
