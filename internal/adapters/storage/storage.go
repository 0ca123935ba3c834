// Package storage opens the repository set selected by database.driver.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samirrijal/spraylog/internal/adapters/memory"
	"github.com/samirrijal/spraylog/internal/adapters/postgres"
	"github.com/samirrijal/spraylog/internal/adapters/sqlite"
	"github.com/samirrijal/spraylog/internal/core/ports"
	"github.com/samirrijal/spraylog/internal/pkg/config"
	"github.com/samirrijal/spraylog/internal/pkg/metrics"
)

// Store bundles the three repositories behind one backend.
type Store struct {
	Driver          string
	Paddocks        ports.PaddockRepository
	Applications    ports.ApplicationRepository
	Recommendations ports.RecommendationRepository

	pg     *postgres.DB
	sqlite *sqlite.DB
}

// Open connects to the configured backend. The memory driver keeps
// everything in process and loses it on exit.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	s := &Store{Driver: cfg.Driver}

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.DSN())
		if err != nil {
			return nil, err
		}
		s.pg = db
		s.Paddocks = postgres.NewPaddockRepo(db)
		s.Applications = postgres.NewApplicationRepo(db)
		s.Recommendations = postgres.NewRecommendationRepo(db)

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s.sqlite = db
		s.Paddocks = sqlite.NewPaddockRepo(db)
		s.Applications = sqlite.NewApplicationRepo(db)
		s.Recommendations = sqlite.NewRecommendationRepo(db)

	case config.DriverMemory:
		s.Paddocks = memory.NewPaddockRepo()
		s.Applications = memory.NewApplicationRepo()
		s.Recommendations = memory.NewRecommendationRepo()

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	slog.Info("storage opened", "driver", cfg.Driver)
	return s, nil
}

// Ping checks the backing database. The memory driver is always reachable.
func (s *Store) Ping(ctx context.Context) error {
	switch {
	case s.pg != nil:
		return s.pg.Ping(ctx)
	case s.sqlite != nil:
		return s.sqlite.Ping(ctx)
	}
	return nil
}

// Persistent reports whether records survive a restart.
func (s *Store) Persistent() bool {
	return s.Driver != config.DriverMemory
}

// ReportPoolMetrics copies postgres pool stats into the db gauges every
// interval until ctx is done. It is a no-op for other drivers.
func (s *Store) ReportPoolMetrics(ctx context.Context, interval time.Duration) {
	if s.pg == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateDBPoolMetrics(s.pg.Pool.Stat())
		}
	}
}

// Close releases database connections.
func (s *Store) Close() {
	if s.pg != nil {
		s.pg.Close()
	}
	if s.sqlite != nil {
		if err := s.sqlite.Close(); err != nil {
			slog.Warn("sqlite close failed", "error", err)
		}
	}
}
