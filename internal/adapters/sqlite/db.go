// Package sqlite stores records in an embedded SQLite file through gorm, for
// single-farm deployments that do not run a database server.
package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// DB wraps a gorm handle opened on a SQLite file.
type DB struct {
	gorm *gorm.DB
}

// Open opens (or creates) the database at path and migrates the schema.
func Open(path string) (*DB, error) {
	g, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := g.AutoMigrate(&paddockModel{}, &applicationModel{}, &recommendationModel{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	return &DB{gorm: g}, nil
}

// Ping checks the underlying connection.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
