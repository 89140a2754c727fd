// Package migrate applies the SQL schema migrations with golang-migrate.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Up applies every pending migration found in dir.
func Up(db *gorm.DB, dir string, logger *zap.SugaredLogger) error {
	m, err := newMigrator(db, dir)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to apply migrations")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errors.Wrap(err, "failed to read migration version")
	}
	logger.Infow("database schema is up to date", "version", version, "dirty", dirty)

	return nil
}

func newMigrator(db *gorm.DB, dir string) (*migrate.Migrate, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	path, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get underlying sql.DB")
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create postgres driver")
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", path), "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migrate instance")
	}
	return m, nil
}

func resolveDir(dir string) (string, error) {
	path, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "failed to get absolute path for migrations")
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return "", errors.Newf("migrations directory does not exist: %s", path)
	}
	return path, nil
}
