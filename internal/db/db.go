package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/snnyvrz/go-book-crud-gin/internal/config"
	"github.com/snnyvrz/go-book-crud-gin/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// Connect opens the configured store and pings it, retrying up to
// cfg.DBMaxAttempts times with cfg.DBRetryDelay between attempts.
func Connect(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	if _, err := dialector(cfg); err != nil {
		return nil, err
	}

	var err error
	for attempt := 1; attempt <= cfg.DBMaxAttempts; attempt++ {
		var db *gorm.DB
		db, err = open(ctx, cfg)
		if err == nil {
			slog.InfoContext(ctx, "db connected", "driver", cfg.DBDriver, "attempt", attempt)
			return db, nil
		}

		slog.WarnContext(ctx, "db not ready",
			"attempt", attempt,
			"max_attempts", cfg.DBMaxAttempts,
			"error", err,
		)

		if attempt == cfg.DBMaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBRetryDelay):
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", cfg.DBMaxAttempts, err)
}

// Migrate keeps the books table in line with model.Book.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Book{}); err != nil {
		return fmt.Errorf("migrate books: %w", err)
	}
	return nil
}

func open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(slog.Default().Handler(), gormLogLevel(cfg)),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

// gormLogLevel turns on SQL traces only when debugging with debug logs.
func gormLogLevel(cfg *config.Config) logger.LogLevel {
	if cfg.GinMode == "debug" && cfg.LogLevel == "debug" {
		return logger.Info
	}
	return logger.Warn
}
