// Package service provides business logic layer for user module.
package service

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubdesk/matchday/internal/auth"
	"github.com/clubdesk/matchday/internal/session"
	"github.com/clubdesk/matchday/internal/user/model"
	"github.com/clubdesk/matchday/internal/user/repository"
	"github.com/clubdesk/matchday/internal/validation"
)

// BcryptCost is the work factor of stored password hashes.
const BcryptCost = 10

// Sessions issues and ends login sessions.
type Sessions interface {
	Create(ctx context.Context, userID, role string) (*session.Session, error)
	Destroy(ctx context.Context, id string) error
}

// Service defines the interface for user business logic operations.
type Service interface {
	// Register creates a user with the user role.
	Register(ctx context.Context, req *model.Credentials) (*model.User, error)

	// Login checks credentials and starts a session.
	Login(ctx context.Context, req *model.Credentials) (*model.User, *session.Session, error)

	// Logout ends the session with id.
	Logout(ctx context.Context, sessionID string) error

	// Me returns the caller, or nil for anonymous callers.
	Me(ctx context.Context) (*model.User, error)

	// EnsureAdmin creates the admin account unless the username exists.
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

type service struct {
	repo     repository.Repository
	sessions Sessions
	logger   *zap.SugaredLogger
}

// New creates a new user service instance.
func New(repo repository.Repository, sessions Sessions, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, sessions: sessions, logger: logger}
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// burnCompare spends the time of a real comparison so unknown usernames
// answer as slowly as wrong passwords.
func burnCompare(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("matchday"), BcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

func checkCredentials(req *model.Credentials) error {
	req.Normalize()
	if req.Username == "" || req.Password == "" {
		return model.ErrMissingCredentials
	}
	return validation.Struct(req)
}

func (s *service) create(ctx context.Context, username, password, role string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a user with the user role.
func (s *service) Register(ctx context.Context, req *model.Credentials) (*model.User, error) {
	if err := checkCredentials(req); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByUsername(ctx, req.Username)
	if err == nil {
		return nil, model.ErrUserExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	user, err := s.create(ctx, req.Username, req.Password, auth.RoleUser)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login checks credentials and starts a session.
func (s *service) Login(ctx context.Context, req *model.Credentials) (*model.User, *session.Session, error) {
	req.Normalize()
	if req.Username == "" || req.Password == "" {
		return nil, nil, model.ErrMissingCredentials
	}

	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			burnCompare(req.Password)
			s.logger.Infow("login rejected", "username", req.Username)
			return nil, nil, model.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Infow("login rejected", "username", req.Username)
		return nil, nil, model.ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Infow("user logged in", "user_id", user.ID, "role", user.Role)
	return user, sess, nil
}

// Logout ends the session with id.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Infow("user logged out", "user_id", auth.ActorID(ctx))
	return nil
}

// Me returns the caller, or nil for anonymous callers and deleted users.
func (s *service) Me(ctx context.Context) (*model.User, error) {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return nil, nil
	}

	user, err := s.repo.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the admin account unless the username exists and
// reports whether it did. An existing account keeps its role and password.
func (s *service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return false, err
	}

	user, err := s.create(ctx, username, password, auth.RoleAdmin)
	if err != nil {
		if errors.Is(err, model.ErrUserExists) {
			return false, nil
		}
		return false, err
	}

	s.logger.Infow("admin account seeded", "user_id", user.ID, "username", username)
	return true, nil
}
