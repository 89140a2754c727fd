// Package repository provides data access layer for match module.
package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/database"
	matchModel "github.com/clubdesk/matchday/internal/match/model"
	teamModel "github.com/clubdesk/matchday/internal/team/model"
)

// Repository defines the interface for match data access operations.
type Repository interface {
	// Create inserts a match.
	Create(ctx context.Context, match *matchModel.Match) error

	// List returns all matches with their events, latest date first.
	List(ctx context.Context) ([]matchModel.Match, error)

	// GetByID returns a match with its events in log order.
	GetByID(ctx context.Context, id string) (*matchModel.Match, error)

	// Update applies column assignments to a match.
	Update(ctx context.Context, id string, updates map[string]interface{}) error

	// Delete removes a match and its events.
	Delete(ctx context.Context, id string) error

	// Count returns the number of matches.
	Count(ctx context.Context) (int64, error)

	// TeamExists reports whether a team with id exists.
	TeamExists(ctx context.Context, teamID string) (bool, error)

	// AppendEvent inserts event at the end of its match's log.
	AppendEvent(ctx context.Context, event *matchModel.Event) error

	// GetEvent returns one event of a match.
	GetEvent(ctx context.Context, matchID, eventID string) (*matchModel.Event, error)

	// DeleteEvent removes one event and reports whether it existed.
	DeleteEvent(ctx context.Context, matchID, eventID string) (bool, error)

	// IncrementScore adds one goal to a side.
	IncrementScore(ctx context.Context, matchID string, side matchModel.Side) error

	// DecrementScore removes one goal from a side without going below zero.
	DecrementScore(ctx context.Context, matchID string, side matchModel.Side) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new match repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func withEvents(db *gorm.DB) *gorm.DB {
	return db.Preload("Events", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("seq ASC")
	})
}

// Create inserts a match.
func (r *repository) Create(ctx context.Context, match *matchModel.Match) error {
	for i := range match.Events {
		match.Events[i].MatchID = match.ID
		match.Events[i].Seq = i
	}
	if err := r.db.WithContext(ctx).Create(match).Error; err != nil {
		return errors.Wrap(err, "create match")
	}
	return nil
}

// List returns all matches with their events, latest date first.
func (r *repository) List(ctx context.Context) ([]matchModel.Match, error) {
	var matches []matchModel.Match
	err := withEvents(r.db.WithContext(ctx)).
		Order("date DESC").
		Order("id ASC").
		Find(&matches).Error
	if err != nil {
		return nil, errors.Wrap(err, "list matches")
	}
	if matches == nil {
		matches = []matchModel.Match{}
	}
	for i := range matches {
		if matches[i].Events == nil {
			matches[i].Events = []matchModel.Event{}
		}
	}
	return matches, nil
}

// GetByID returns a match with its events in log order.
func (r *repository) GetByID(ctx context.Context, id string) (*matchModel.Match, error) {
	var match matchModel.Match
	err := withEvents(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&match).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, matchModel.ErrMatchNotFound
		}
		return nil, errors.Wrap(err, "get match")
	}
	if match.Events == nil {
		match.Events = []matchModel.Event{}
	}
	return &match, nil
}

// Update applies column assignments to a match.
func (r *repository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&matchModel.Match{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return errors.Wrap(result.Error, "update match")
	}
	if result.RowsAffected == 0 {
		return matchModel.ErrMatchNotFound
	}
	return nil
}

// Delete removes a match and its events.
func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("match_id = ?", id).Delete(&matchModel.Event{}).Error; err != nil {
		return errors.Wrap(err, "delete events")
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&matchModel.Match{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete match")
	}
	if result.RowsAffected == 0 {
		return matchModel.ErrMatchNotFound
	}
	return nil
}

// Count returns the number of matches.
func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&matchModel.Match{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count matches")
	}
	return count, nil
}

// TeamExists reports whether a team with id exists.
func (r *repository) TeamExists(ctx context.Context, teamID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ?", teamID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check team")
	}
	return count > 0, nil
}

// AppendEvent inserts event at the end of its match's log.
func (r *repository) AppendEvent(ctx context.Context, event *matchModel.Event) error {
	var next int
	err := r.db.WithContext(ctx).
		Model(&matchModel.Event{}).
		Select("COALESCE(MAX(seq), -1) + 1").
		Where("match_id = ?", event.MatchID).
		Row().
		Scan(&next)
	if err != nil {
		return errors.Wrap(err, "next event position")
	}

	event.Seq = next
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return errors.Wrap(err, "insert event")
	}
	return nil
}

// GetEvent returns one event of a match.
func (r *repository) GetEvent(ctx context.Context, matchID, eventID string) (*matchModel.Event, error) {
	var event matchModel.Event
	err := r.db.WithContext(ctx).
		Where("match_id = ? AND id = ?", matchID, eventID).
		First(&event).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, matchModel.ErrEventNotFound
		}
		return nil, errors.Wrap(err, "get event")
	}
	return &event, nil
}

// DeleteEvent removes one event and reports whether it existed.
func (r *repository) DeleteEvent(ctx context.Context, matchID, eventID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("match_id = ? AND id = ?", matchID, eventID).
		Delete(&matchModel.Event{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "delete event")
	}
	return result.RowsAffected > 0, nil
}

// IncrementScore adds one goal to a side.
func (r *repository) IncrementScore(ctx context.Context, matchID string, side matchModel.Side) error {
	column := side.ScoreColumn()
	err := r.db.WithContext(ctx).
		Model(&matchModel.Match{}).
		Where("id = ?", matchID).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	return errors.Wrap(err, "increment score")
}

// DecrementScore removes one goal from a side without going below zero.
func (r *repository) DecrementScore(ctx context.Context, matchID string, side matchModel.Side) error {
	column := side.ScoreColumn()
	err := r.db.WithContext(ctx).
		Model(&matchModel.Match{}).
		Where("id = ?", matchID).
		UpdateColumn(column, gorm.Expr("CASE WHEN "+column+" > 0 THEN "+column+" - 1 ELSE 0 END")).Error
	return errors.Wrap(err, "decrement score")
}
