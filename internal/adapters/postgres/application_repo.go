package postgres

import (
	"context"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// ApplicationRepo implements ports.ApplicationRepository with pgx.
type ApplicationRepo struct {
	db *DB
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

const applicationColumns = `id, paddock_ids, operator, farm, application_date, water_rate, area, chemicals,
	wind_speed, wind_direction, temperature, humidity,
	gps_latitude, gps_longitude, gps_accuracy, created_at`

// applicationRow mirrors the flattened weather/GPS columns.
type applicationRow struct {
	app                                domain.Application
	windSpeed, windDir, temp, humidity *float64
	gpsLat, gpsLon, gpsAccuracy        *float64
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	var r applicationRow
	if err := row.Scan(
		&r.app.ID, &r.app.PaddockIDs, &r.app.Operator, &r.app.Farm, &r.app.ApplicationDate,
		&r.app.WaterRate, &r.app.Area, &r.app.Chemicals,
		&r.windSpeed, &r.windDir, &r.temp, &r.humidity,
		&r.gpsLat, &r.gpsLon, &r.gpsAccuracy, &r.app.CreatedAt,
	); err != nil {
		return nil, err
	}

	if r.windSpeed != nil {
		r.app.Weather = &domain.WeatherSnapshot{
			WindSpeed:     *r.windSpeed,
			WindDirection: deref(r.windDir),
			Temperature:   deref(r.temp),
			Humidity:      deref(r.humidity),
		}
	}
	if r.gpsLat != nil && r.gpsLon != nil {
		r.app.GPS = &domain.GPSFix{Latitude: *r.gpsLat, Longitude: *r.gpsLon, Accuracy: deref(r.gpsAccuracy)}
	}
	if r.app.Chemicals == nil {
		r.app.Chemicals = []domain.Chemical{}
	}
	return &r.app, nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Insert stores a new application.
func (r *ApplicationRepo) Insert(ctx context.Context, a *domain.Application) error {
	var windSpeed, windDir, temp, humidity, gpsLat, gpsLon, gpsAcc *float64
	if w := a.Weather; w != nil {
		windSpeed, windDir, temp, humidity = &w.WindSpeed, &w.WindDirection, &w.Temperature, &w.Humidity
	}
	if g := a.GPS; g != nil {
		gpsLat, gpsLon, gpsAcc = &g.Latitude, &g.Longitude, &g.Accuracy
	}

	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO applications (id, paddock_ids, operator, farm, application_date, water_rate, area, chemicals,
		                          wind_speed, wind_direction, temperature, humidity,
		                          gps_latitude, gps_longitude, gps_accuracy, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, a.ID, a.PaddockIDs, a.Operator, a.Farm, a.ApplicationDate, a.WaterRate, a.Area, a.Chemicals,
		windSpeed, windDir, temp, humidity, gpsLat, gpsLon, gpsAcc, a.CreatedAt)
	return err
}

// GetByID returns an application by id.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// List returns every application in recording order.
func (r *ApplicationRepo) List(ctx context.Context) ([]domain.Application, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}
