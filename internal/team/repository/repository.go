// Package repository provides data access layer for team module.
package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/database"
	teamModel "github.com/clubdesk/matchday/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts a team together with its initial roster.
	Create(ctx context.Context, team *teamModel.Team) error

	// List returns all teams with rosters, newest first.
	List(ctx context.Context) ([]teamModel.Team, error)

	// GetByID returns a team with its roster in roster order.
	GetByID(ctx context.Context, id string) (*teamModel.Team, error)

	// GetByName returns a team by its unique name.
	GetByName(ctx context.Context, name string) (*teamModel.Team, error)

	// Update applies column assignments to a team.
	Update(ctx context.Context, id string, updates map[string]interface{}) error

	// Delete removes a team and its roster.
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func withRoster(db *gorm.DB) *gorm.DB {
	return db.Preload("Players", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("roster_order ASC")
	})
}

// Create inserts a team together with its initial roster.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	for i := range team.Players {
		team.Players[i].TeamID = team.ID
		team.Players[i].RosterOrder = i
	}

	err := r.db.WithContext(ctx).Create(team).Error
	if err != nil {
		if database.IsDuplicateKey(err) {
			return teamModel.ErrTeamExists
		}
		return errors.Wrap(err, "create team")
	}
	return nil
}

// List returns all teams with rosters, newest first.
func (r *repository) List(ctx context.Context) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := withRoster(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Order("name ASC").
		Find(&teams).Error
	if err != nil {
		return nil, errors.Wrap(err, "list teams")
	}
	if teams == nil {
		teams = []teamModel.Team{}
	}
	return teams, nil
}

// GetByID returns a team with its roster in roster order.
func (r *repository) GetByID(ctx context.Context, id string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := withRoster(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, errors.Wrap(err, "get team")
	}
	if team.Players == nil {
		team.Players = []teamModel.Player{}
	}
	return &team, nil
}

// GetByName returns a team by its unique name.
func (r *repository) GetByName(ctx context.Context, name string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := withRoster(r.db.WithContext(ctx)).
		Where("name = ?", name).
		First(&team).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, errors.Wrap(err, "get team by name")
	}
	return &team, nil
}

// Update applies column assignments to a team.
func (r *repository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		if database.IsDuplicateKey(result.Error) {
			return teamModel.ErrTeamExists
		}
		return errors.Wrap(result.Error, "update team")
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}
	return nil
}

// Delete removes a team and its roster.
func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("team_id = ?", id).Delete(&teamModel.Player{}).Error; err != nil {
		return errors.Wrap(err, "delete roster")
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&teamModel.Team{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete team")
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}

	r.logger.Debugw("team deleted", "team_id", id)
	return nil
}
