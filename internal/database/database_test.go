package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/database/config"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestOpen_Unreachable(t *testing.T) {
	t.Setenv("DB_RETRY_MAX_ATTEMPTS", "1")

	cfg := config.Config{
		Host:     "127.0.0.1",
		User:     "club",
		Password: "hunter2",
		DBName:   "matchday",
		Port:     "1",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	db, err := Open(context.Background(), cfg, zap.NewNop().Sugar())
	require.Error(t, err)
	assert.Nil(t, db)
	assert.NotContains(t, err.Error(), "hunter2")
}

func TestHealthCheck(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		assert.Error(t, HealthCheck(context.Background(), nil))
	})

	t.Run("open database", func(t *testing.T) {
		assert.NoError(t, HealthCheck(context.Background(), openSQLite(t)))
	})

	t.Run("closed database", func(t *testing.T) {
		db := openSQLite(t)
		require.NoError(t, Close(db))
		assert.Error(t, HealthCheck(context.Background(), db))
	})
}

func TestClose(t *testing.T) {
	assert.NoError(t, Close(nil))
	assert.NoError(t, Close(openSQLite(t)))
}

func TestStats(t *testing.T) {
	_, err := Stats(nil)
	assert.Error(t, err)

	stats, err := Stats(openSQLite(t))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.OpenConnections, 0)
}
