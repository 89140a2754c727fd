// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	matchModel "github.com/clubdesk/matchday/internal/match/model"
	"github.com/clubdesk/matchday/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
// Every query is read only.
type Repository interface {
	// FinishedScores returns the scores of all finished matches.
	FinishedScores(ctx context.Context) ([]model.MatchScore, error)

	// TeamNames returns the names of the existing teams among ids.
	TeamNames(ctx context.Context, ids []string) (map[string]string, error)

	// Players returns players of all teams ordered by column, then by name.
	Players(ctx context.Context, column string, desc bool, limit int) ([]model.PlayerRow, error)

	// TopTeams returns teams ordered by rating, then by name.
	TopTeams(ctx context.Context, desc bool, limit int) ([]model.TeamSummary, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

func direction(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}

// FinishedScores returns the scores of all finished matches.
func (r *repository) FinishedScores(ctx context.Context) ([]model.MatchScore, error) {
	var scores []model.MatchScore
	err := r.db.WithContext(ctx).
		Table("matches").
		Select("home_team_id, away_team_id, score_home, score_away").
		Where("status = ?", matchModel.StatusFinished).
		Scan(&scores).Error
	if err != nil {
		return nil, errors.Wrap(err, "query finished matches")
	}

	r.logger.Debugw("finished matches loaded", "count", len(scores))
	return scores, nil
}

// TeamNames returns the names of the existing teams among ids.
func (r *repository) TeamNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   string `gorm:"column:id"`
		Name string `gorm:"column:name"`
	}
	err := r.db.WithContext(ctx).
		Table("teams").
		Select("id, name").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query team names")
	}

	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// Players returns players of all teams ordered by column, then by name.
// column must be a trusted players column name.
func (r *repository) Players(ctx context.Context, column string, desc bool, limit int) ([]model.PlayerRow, error) {
	var rows []model.PlayerRow
	err := r.db.WithContext(ctx).
		Table("players").
		Select(`
			players.team_id,
			teams.name AS team_name,
			players.id AS player_id,
			players.name,
			players.position,
			COALESCE(players.matches, 0) AS matches,
			COALESCE(players.goals, 0) AS goals,
			COALESCE(players.assists, 0) AS assists,
			COALESCE(players.rating, 0) AS rating
		`).
		Joins("JOIN teams ON teams.id = players.team_id").
		Order("players." + column + " " + direction(desc)).
		Order("players.name ASC").
		Order("players.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query players")
	}

	if rows == nil {
		rows = []model.PlayerRow{}
	}
	return rows, nil
}

// TopTeams returns teams ordered by rating, then by name.
func (r *repository) TopTeams(ctx context.Context, desc bool, limit int) ([]model.TeamSummary, error) {
	var teams []model.TeamSummary
	err := r.db.WithContext(ctx).
		Table("teams").
		Select("id, name, rating, country, league, logo_url").
		Order("rating " + direction(desc)).
		Order("name ASC").
		Limit(limit).
		Scan(&teams).Error
	if err != nil {
		return nil, errors.Wrap(err, "query top teams")
	}

	if teams == nil {
		teams = []model.TeamSummary{}
	}
	return teams, nil
}
