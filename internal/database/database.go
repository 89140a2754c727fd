// Package database opens and supervises the PostgreSQL connection.
package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/clubdesk/matchday/internal/database/config"
	"github.com/clubdesk/matchday/internal/database/migrate"
	"github.com/clubdesk/matchday/internal/database/pool"
	"github.com/clubdesk/matchday/pkg/retry"
)

// Open connects to PostgreSQL with retries, configures the pool and, when
// enabled, applies migrations.
func Open(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	retryCfg := config.LoadRetryConfigFromEnv()
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warnw("database not ready, retrying",
			"attempt", attempt,
			"delay", delay,
			"error", config.SanitizeError(err, cfg),
		)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		return gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.Setup(db, config.LoadPoolConfigFromEnv()); err != nil {
		_ = Close(db)
		return nil, errors.Wrap(err, "failed to setup connection pool")
	}

	if cfg.AutoMigrate {
		if err := migrate.Up(db, cfg.MigrationsPath, logger); err != nil {
			_ = Close(db)
			return nil, err
		}
	}

	logger.Infow("connected to database", "host", cfg.Host, "database", cfg.DBName)
	return db, nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "database ping failed")
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}
	return errors.Wrap(sqlDB.Close(), "failed to close database connection")
}

// Stats returns database connection pool statistics.
func Stats(db *gorm.DB) (sql.DBStats, error) {
	if db == nil {
		return sql.DBStats{}, errors.New("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return sql.DBStats{}, errors.Wrap(err, "failed to get underlying sql.DB")
	}
	return sqlDB.Stats(), nil
}
