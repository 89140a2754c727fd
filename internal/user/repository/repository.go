// Package repository provides data access layer for user module.
package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/database"
	"github.com/clubdesk/matchday/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// Create inserts a user. A taken username yields ErrUserExists.
	Create(ctx context.Context, user *model.User) error

	// GetByID finds a user by id.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// GetByUsername finds a user by username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new user repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a user.
func (r *repository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return model.ErrUserExists
		}
		return errors.Wrap(err, "create user")
	}
	return nil
}

// GetByID finds a user by id.
func (r *repository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByUsername finds a user by username.
func (r *repository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *repository) first(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, model.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "get user")
	}
	return &user, nil
}
