package sqlite

import (
	"time"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// Seq is the integer primary key so listing can follow insertion order;
// the public identity lives in the unique id column.

type paddockModel struct {
	Seq             uint              `gorm:"primaryKey;autoIncrement"`
	ID              string            `gorm:"column:id;uniqueIndex;not null"`
	Name            string            `gorm:"not null"`
	Farm            string            `gorm:"not null"`
	Area            float64           `gorm:"not null"`
	Boundary        []domain.GeoPoint `gorm:"serializer:json;not null"`
	CenterLatitude  float64
	CenterLongitude float64
	CreatedAt       time.Time
}

func (paddockModel) TableName() string { return "paddocks" }

func newPaddockModel(p *domain.Paddock) *paddockModel {
	return &paddockModel{
		ID:              p.ID,
		Name:            p.Name,
		Farm:            p.Farm,
		Area:            p.Area,
		Boundary:        p.Boundary,
		CenterLatitude:  p.CenterLatitude,
		CenterLongitude: p.CenterLongitude,
		CreatedAt:       p.CreatedAt,
	}
}

func (m *paddockModel) toDomain() domain.Paddock {
	return domain.Paddock{
		ID:              m.ID,
		Name:            m.Name,
		Farm:            m.Farm,
		Area:            m.Area,
		Boundary:        m.Boundary,
		CenterLatitude:  m.CenterLatitude,
		CenterLongitude: m.CenterLongitude,
		CreatedAt:       m.CreatedAt.UTC(),
	}
}

type applicationModel struct {
	Seq             uint     `gorm:"primaryKey;autoIncrement"`
	ID              string   `gorm:"column:id;uniqueIndex;not null"`
	PaddockIDs      []string `gorm:"column:paddock_ids;serializer:json"`
	Operator        string
	Farm            string
	ApplicationDate time.Time
	WaterRate       float64
	Area            float64
	Chemicals       []domain.Chemical       `gorm:"serializer:json"`
	Weather         *domain.WeatherSnapshot `gorm:"serializer:json"`
	GPS             *domain.GPSFix          `gorm:"column:gps;serializer:json"`
	CreatedAt       time.Time
}

func (applicationModel) TableName() string { return "applications" }

func newApplicationModel(a *domain.Application) *applicationModel {
	return &applicationModel{
		ID:              a.ID,
		PaddockIDs:      a.PaddockIDs,
		Operator:        a.Operator,
		Farm:            a.Farm,
		ApplicationDate: a.ApplicationDate,
		WaterRate:       a.WaterRate,
		Area:            a.Area,
		Chemicals:       a.Chemicals,
		Weather:         a.Weather,
		GPS:             a.GPS,
		CreatedAt:       a.CreatedAt,
	}
}

func (m *applicationModel) toDomain() domain.Application {
	chemicals := m.Chemicals
	if chemicals == nil {
		chemicals = []domain.Chemical{}
	}
	return domain.Application{
		ID:              m.ID,
		PaddockIDs:      m.PaddockIDs,
		Operator:        m.Operator,
		Farm:            m.Farm,
		ApplicationDate: m.ApplicationDate.UTC(),
		WaterRate:       m.WaterRate,
		Area:            m.Area,
		Chemicals:       chemicals,
		Weather:         m.Weather,
		GPS:             m.GPS,
		CreatedAt:       m.CreatedAt.UTC(),
	}
}

type recommendationModel struct {
	Seq           uint   `gorm:"primaryKey;autoIncrement"`
	ID            string `gorm:"column:id;uniqueIndex;not null"`
	ApplicationID string `gorm:"index;not null"`
	Author        string
	Note          string
	Priority      string
	CreatedAt     time.Time
}

func (recommendationModel) TableName() string { return "recommendations" }
