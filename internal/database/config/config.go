// Package config provides database configuration management.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	appConfig "github.com/clubdesk/matchday/internal/config"
	"github.com/clubdesk/matchday/internal/database/pool"
	"github.com/clubdesk/matchday/pkg/retry"
)

// Config holds database connection configuration.
type Config struct {
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string
	// URL, when set, is used verbatim instead of the discrete fields.
	URL string
	// AutoMigrate applies pending migrations on startup.
	AutoMigrate bool
	// MigrationsPath is the directory holding golang-migrate SQL files.
	MigrationsPath string
}

// DSN returns the connection string for the postgres driver.
func (c Config) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode, c.TimeZone)
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Host:           appConfig.GetEnv("DB_HOST", "localhost"),
		User:           appConfig.GetEnv("DB_USER", "postgres"),
		Password:       appConfig.GetEnv("DB_PASSWORD", "postgres"),
		DBName:         appConfig.GetEnv("DB_NAME", "matchday"),
		Port:           appConfig.GetEnv("DB_PORT", "5432"),
		SSLMode:        appConfig.GetEnv("DB_SSLMODE", "disable"),
		TimeZone:       appConfig.GetEnv("DB_TIMEZONE", "UTC"),
		URL:            appConfig.GetEnv("DATABASE_URL", ""),
		AutoMigrate:    appConfig.GetEnvBool("DB_AUTO_MIGRATE", true),
		MigrationsPath: appConfig.GetEnv("MIGRATIONS_PATH", "migrations"),
	}
}

// SanitizeError strips the password from a connection error.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if cfg.Password != "" {
		msg = strings.ReplaceAll(msg, cfg.Password, "***")
	}
	return errors.Newf("failed to connect to database: %s", msg)
}

// LoadRetryConfigFromEnv loads connection retry configuration from environment variables.
func LoadRetryConfigFromEnv() retry.Config {
	cfg := retry.PostgresConfig()
	cfg.MaxAttempts = appConfig.GetEnvInt("DB_RETRY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.InitialDelay = appConfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", cfg.InitialDelay)
	cfg.MaxDelay = appConfig.GetEnvDuration("DB_RETRY_MAX_DELAY", cfg.MaxDelay)
	if value := appConfig.GetEnv("DB_RETRY_MULTIPLIER", ""); value != "" {
		if multiplier, err := strconv.ParseFloat(value, 64); err == nil {
			cfg.Multiplier = multiplier
		}
	}
	return cfg
}

// LoadPoolConfigFromEnv loads connection pool configuration from environment variables.
func LoadPoolConfigFromEnv() pool.Config {
	cfg := pool.DefaultConfig()
	cfg.MaxOpenConns = appConfig.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns)
	cfg.MaxIdleConns = appConfig.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns)
	cfg.ConnMaxLifetime = appConfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime)
	cfg.ConnMaxIdleTime = appConfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime)
	return cfg
}
