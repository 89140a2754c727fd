// Package session keeps login sessions in a pluggable store.
package session

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown and expired sessions.
var ErrNotFound = errors.New("session not found")

// Session binds a session id to a user and its role.
type Session struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(64)" json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);not null" json:"userId"`
	Role      string    `gorm:"column:role;type:varchar(16);not null" json:"role"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index:idx_sessions_expires_at" json:"expiresAt"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Session) TableName() string {
	return "sessions"
}

// Store persists sessions.
type Store interface {
	// Save stores s for ttl.
	Save(ctx context.Context, s *Session, ttl time.Duration) error

	// Get returns the session with id or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes the session with id. Unknown ids are not an error.
	Delete(ctx context.Context, id string) error
}

// Manager issues and resolves sessions.
type Manager struct {
	store  Store
	ttl    time.Duration
	clock  clockwork.Clock
	logger *zap.SugaredLogger
}

// NewManager creates a session manager. A nil clock means the real clock.
func NewManager(store Store, ttl time.Duration, clock clockwork.Clock, logger *zap.SugaredLogger) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Manager{store: store, ttl: ttl, clock: clock, logger: logger}
}

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create starts a session for the user.
func (m *Manager) Create(ctx context.Context, userID, role string) (*Session, error) {
	now := m.clock.Now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return nil, errors.Wrap(err, "save session")
	}

	m.logger.Debugw("session created", "user_id", userID, "role", role)
	return s, nil
}

// Load resolves a session id. Expired sessions are removed and reported as
// ErrNotFound.
func (m *Manager) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !m.clock.Now().Before(s.ExpiresAt) {
		if err := m.store.Delete(ctx, id); err != nil {
			m.logger.Warnw("failed to delete expired session", "user_id", s.UserID, "error", err)
		}
		return nil, ErrNotFound
	}
	return s, nil
}

// Destroy ends a session.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return errors.Wrap(m.store.Delete(ctx, id), "delete session")
}
