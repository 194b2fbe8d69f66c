package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"room-booking-console/config"
	"room-booking-console/internal/model"
)

const sqlitePrefix = "sqlite:"

// Dialector picks the gorm driver for a DSN. "sqlite:<path>" opens a sqlite
// file (or ":memory:"), anything else is handed to postgres.
func Dialector(dsn string) gorm.Dialector {
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		return sqlite.Open(path)
	}
	return postgres.Open(dsn)
}

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.LogQueries {
		level = logger.Info
	}
	db, err := gorm.Open(Dialector(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info().Str("driver", db.Dialector.Name()).Msg("database initialization complete")
	return db, nil
}

// Migrate creates or updates the console tables.
func Migrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")
	if err := db.AutoMigrate(
		&model.AuditEntry{},
		&model.PushSubscription{},
		&model.SubscriptionRoom{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}
