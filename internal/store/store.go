// Package store is the persistence gateway: a thin typed layer over a local
// SQLite database. Engines consume its narrow accessor methods and never see
// gorm directly.
package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open connects to the SQLite database at path and migrates the schema.
// Use ":memory:" for tests.
func Open(path string, logger *zap.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}

	if err := db.AutoMigrate(
		&User{},
		&Resume{},
		&Vacancy{},
		&Application{},
		&UserAction{},
		&UserStats{},
		&Achievement{},
		&SearchFilter{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	logger.Debug("store opened", zap.String("path", path))

	return &Store{db: db, logger: logger}, nil
}

// Transaction runs fn against a transaction-bound store. The callback either
// commits as a whole or rolls back as a whole.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, logger: s.logger})
	})
}
