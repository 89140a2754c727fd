package session

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/database"
)

// DBStore keeps sessions in the sessions table.
type DBStore struct {
	db    *gorm.DB
	clock clockwork.Clock
}

// NewDBStore creates a database session store. A nil clock means the real clock.
func NewDBStore(db *gorm.DB, clock clockwork.Clock) *DBStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DBStore{db: db, clock: clock}
}

// Save stores s. Expiry is carried by s.ExpiresAt.
func (s *DBStore) Save(ctx context.Context, sess *Session, _ time.Duration) error {
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return errors.Wrap(err, "insert session")
	}
	return nil
}

// Get returns an unexpired session.
func (s *DBStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, s.clock.Now().UTC()).
		First(&sess).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get session")
	}
	return &sess, nil
}

// Delete removes a session.
func (s *DBStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Session{}).Error; err != nil {
		return errors.Wrap(err, "delete session")
	}
	return nil
}

// PurgeExpired removes expired sessions and returns how many were removed.
func (s *DBStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", s.clock.Now().UTC()).
		Delete(&Session{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "purge sessions")
	}
	return result.RowsAffected, nil
}
