// Package repository provides data access layer for contact module.
package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/contact/model"
)

// Repository stores contact messages.
type Repository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new contact repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, msg *model.ContactMessage) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(msg).Error, "create contact message")
}
