// Package repository provides roster data access.
package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/database"
	teamModel "github.com/clubdesk/matchday/internal/team/model"
)

// Repository defines roster data access operations.
type Repository interface {
	// TeamExists reports whether a team with id exists.
	TeamExists(ctx context.Context, teamID string) (bool, error)

	// GetPlayer returns a player of the given roster.
	GetPlayer(ctx context.Context, teamID, playerID string) (*teamModel.Player, error)

	// Append inserts player at the end of the roster named by player.TeamID.
	Append(ctx context.Context, player *teamModel.Player) error

	// Update applies column assignments to a roster entry.
	Update(ctx context.Context, teamID, playerID string, updates map[string]interface{}) error

	// IncrementGoals adds one goal to a roster entry.
	IncrementGoals(ctx context.Context, teamID, playerID string) error

	// Detach deletes the roster entry and reports whether it existed.
	Detach(ctx context.Context, teamID, playerID string) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new roster repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
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

// GetPlayer returns a player of the given roster.
func (r *repository) GetPlayer(ctx context.Context, teamID, playerID string) (*teamModel.Player, error) {
	var player teamModel.Player
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND id = ?", teamID, playerID).
		First(&player).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, teamModel.ErrPlayerNotFound
		}
		return nil, errors.Wrap(err, "get player")
	}
	return &player, nil
}

// Append inserts player at the end of the roster named by player.TeamID.
func (r *repository) Append(ctx context.Context, player *teamModel.Player) error {
	var next int
	err := r.db.WithContext(ctx).
		Model(&teamModel.Player{}).
		Select("COALESCE(MAX(roster_order), -1) + 1").
		Where("team_id = ?", player.TeamID).
		Row().
		Scan(&next)
	if err != nil {
		return errors.Wrap(err, "next roster position")
	}

	player.RosterOrder = next
	if err := r.db.WithContext(ctx).Create(player).Error; err != nil {
		return errors.Wrap(err, "insert player")
	}
	return nil
}

// Update applies column assignments to a roster entry.
func (r *repository) Update(ctx context.Context, teamID, playerID string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Player{}).
		Where("team_id = ? AND id = ?", teamID, playerID).
		Updates(updates)
	if result.Error != nil {
		return errors.Wrap(result.Error, "update player")
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrPlayerNotFound
	}
	return nil
}

// IncrementGoals adds one goal to a roster entry.
func (r *repository) IncrementGoals(ctx context.Context, teamID, playerID string) error {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Player{}).
		Where("team_id = ? AND id = ?", teamID, playerID).
		UpdateColumn("goals", gorm.Expr("goals + ?", 1))
	if result.Error != nil {
		return errors.Wrap(result.Error, "increment goals")
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrPlayerNotFound
	}
	return nil
}

// Detach deletes the roster entry and reports whether it existed. The
// guarded delete lets at most one concurrent caller win.
func (r *repository) Detach(ctx context.Context, teamID, playerID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND id = ?", teamID, playerID).
		Delete(&teamModel.Player{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "detach player")
	}
	return result.RowsAffected > 0, nil
}
