// Package service provides business logic layer for statistics module.
package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/clubdesk/matchday/internal/statistics/model"
	"github.com/clubdesk/matchday/internal/statistics/repository"
)

// MaxPlayers caps the player list.
const MaxPlayers = 500

// Top-teams limit bounds.
const (
	DefaultTopTeams = 10
	MaxTopTeams     = 50
)

// OrderAsc selects ascending order. Any other order value means descending.
const OrderAsc = "asc"

// playerSortColumns whitelists the sortable player columns.
var playerSortColumns = map[string]string{
	"rating":  "rating",
	"goals":   "goals",
	"assists": "assists",
	"matches": "matches",
	"name":    "name",
}

// DefaultPlayerSort is used for unknown sort fields.
const DefaultPlayerSort = "rating"

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetLeaderboard returns the league table built from finished matches.
	GetLeaderboard(ctx context.Context) ([]model.StandingRow, error)

	// GetPlayers returns up to MaxPlayers players sorted by field and order.
	GetPlayers(ctx context.Context, field, order string) ([]model.PlayerRow, error)

	// GetTopTeams returns teams ordered by rating.
	GetTopTeams(ctx context.Context, limit int, order string) ([]model.TeamSummary, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetLeaderboard returns the league table built from finished matches.
// Teams that no longer exist are left out.
func (s *service) GetLeaderboard(ctx context.Context) ([]model.StandingRow, error) {
	scores, err := s.repo.FinishedScores(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(scores)*2)
	seen := make(map[string]struct{}, len(scores)*2)
	for _, sc := range scores {
		for _, id := range []string{sc.HomeTeamID, sc.AwayTeamID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	names, err := s.repo.TeamNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := BuildStandings(scores, names)
	s.logger.Debugw("leaderboard built", "matches", len(scores), "teams", len(rows))
	return rows, nil
}

func record(row *model.StandingRow, goalsFor, goalsAgainst int) {
	row.Played++
	row.GoalsFor += goalsFor
	row.GoalsAgainst += goalsAgainst
	switch {
	case goalsFor > goalsAgainst:
		row.Wins++
	case goalsFor == goalsAgainst:
		row.Draws++
	default:
		row.Losses++
	}
}

// BuildStandings folds finished match scores into standings rows. Each match
// counts once from the home side and once from the away side. Teams missing
// from names get no row. Rows are ordered by points, goal difference and
// goals scored, all descending, then by name and id.
func BuildStandings(scores []model.MatchScore, names map[string]string) []model.StandingRow {
	byTeam := make(map[string]*model.StandingRow)
	row := func(teamID string) *model.StandingRow {
		r, ok := byTeam[teamID]
		if !ok {
			r = &model.StandingRow{TeamID: teamID}
			byTeam[teamID] = r
		}
		return r
	}

	for _, sc := range scores {
		record(row(sc.HomeTeamID), sc.ScoreHome, sc.ScoreAway)
		record(row(sc.AwayTeamID), sc.ScoreAway, sc.ScoreHome)
	}

	rows := make([]model.StandingRow, 0, len(byTeam))
	for teamID, r := range byTeam {
		name, ok := names[teamID]
		if !ok {
			continue
		}
		r.TeamName = name
		r.Points = r.Wins*3 + r.Draws
		r.GoalDiff = r.GoalsFor - r.GoalsAgainst
		rows = append(rows, *r)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}
		return a.TeamID < b.TeamID
	})
	return rows
}

// GetPlayers returns up to MaxPlayers players sorted by field and order.
// Unknown fields sort by rating.
func (s *service) GetPlayers(ctx context.Context, field, order string) ([]model.PlayerRow, error) {
	column, ok := playerSortColumns[field]
	if !ok {
		column = DefaultPlayerSort
	}
	desc := order != OrderAsc

	rows, err := s.repo.Players(ctx, column, desc, MaxPlayers)
	if err != nil {
		return nil, err
	}

	s.logger.Debugw("players listed", "sort", column, "desc", desc, "count", len(rows))
	return rows, nil
}

// NormalizeLimit maps non-positive limits to DefaultTopTeams and caps the
// rest at MaxTopTeams.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopTeams
	}
	if limit > MaxTopTeams {
		return MaxTopTeams
	}
	return limit
}

// GetTopTeams returns teams ordered by rating. Order defaults to descending.
func (s *service) GetTopTeams(ctx context.Context, limit int, order string) ([]model.TeamSummary, error) {
	return s.repo.TopTeams(ctx, order != OrderAsc, NormalizeLimit(limit))
}
