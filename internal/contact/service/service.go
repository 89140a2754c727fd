// Package service provides business logic layer for contact module.
package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clubdesk/matchday/internal/contact/model"
	"github.com/clubdesk/matchday/internal/contact/repository"
	"github.com/clubdesk/matchday/internal/validation"
)

// Service accepts contact form submissions.
type Service interface {
	Submit(ctx context.Context, req *model.SubmitRequest) (*model.ContactMessage, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new contact service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// Submit stores a message. All fields are required after trimming.
func (s *service) Submit(ctx context.Context, req *model.SubmitRequest) (*model.ContactMessage, error) {
	req.Normalize()
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return nil, model.ErrFieldsRequired
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	msg := &model.ContactMessage{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Infow("contact message stored", "message_id", msg.ID)
	return msg, nil
}
