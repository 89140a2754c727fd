package service

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clubdesk/matchday/internal/statistics/model"
)

// mockRepository is a mock implementation of repository.Repository for unit tests.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) FinishedScores(ctx context.Context) ([]model.MatchScore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MatchScore), args.Error(1)
}

func (m *mockRepository) TeamNames(ctx context.Context, ids []string) (map[string]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *mockRepository) Players(ctx context.Context, column string, desc bool, limit int) ([]model.PlayerRow, error) {
	args := m.Called(ctx, column, desc, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PlayerRow), args.Error(1)
}

func (m *mockRepository) TopTeams(ctx context.Context, desc bool, limit int) ([]model.TeamSummary, error) {
	args := m.Called(ctx, desc, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TeamSummary), args.Error(1)
}

func TestBuildStandings(t *testing.T) {
	names := map[string]string{"a": "Ajax", "b": "PSV", "c": "AZ"}

	t.Run("points and tie-breaks", func(t *testing.T) {
		scores := []model.MatchScore{
			{HomeTeamID: "a", AwayTeamID: "b", ScoreHome: 3, ScoreAway: 1},
			{HomeTeamID: "b", AwayTeamID: "c", ScoreHome: 2, ScoreAway: 2},
			{HomeTeamID: "c", AwayTeamID: "a", ScoreHome: 1, ScoreAway: 0},
		}

		rows := BuildStandings(scores, names)
		require.Len(t, rows, 3)

		assert.Equal(t, model.StandingRow{
			TeamID: "c", TeamName: "AZ", Played: 2, Wins: 1, Draws: 1,
			GoalsFor: 3, GoalsAgainst: 2, GoalDiff: 1, Points: 4,
		}, rows[0])
		assert.Equal(t, model.StandingRow{
			TeamID: "a", TeamName: "Ajax", Played: 2, Wins: 1, Losses: 1,
			GoalsFor: 3, GoalsAgainst: 2, GoalDiff: 1, Points: 3,
		}, rows[1])
		assert.Equal(t, model.StandingRow{
			TeamID: "b", TeamName: "PSV", Played: 2, Draws: 1, Losses: 1,
			GoalsFor: 3, GoalsAgainst: 5, GoalDiff: -2, Points: 1,
		}, rows[2])
	})

	t.Run("invariants hold", func(t *testing.T) {
		scores := []model.MatchScore{
			{HomeTeamID: "a", AwayTeamID: "b", ScoreHome: 0, ScoreAway: 0},
			{HomeTeamID: "b", AwayTeamID: "a", ScoreHome: 4, ScoreAway: 2},
			{HomeTeamID: "a", AwayTeamID: "c", ScoreHome: 1, ScoreAway: 3},
			{HomeTeamID: "c", AwayTeamID: "b", ScoreHome: 2, ScoreAway: 2},
		}
		played := map[string]int{"a": 3, "b": 3, "c": 2}

		rows := BuildStandings(scores, names)
		require.Len(t, rows, 3)
		for i, r := range rows {
			assert.Equal(t, played[r.TeamID], r.Wins+r.Draws+r.Losses, r.TeamID)
			assert.Equal(t, r.Played, r.Wins+r.Draws+r.Losses)
			assert.Equal(t, r.Wins*3+r.Draws, r.Points)
			assert.Equal(t, r.GoalsFor-r.GoalsAgainst, r.GoalDiff)
			if i > 0 {
				prev := rows[i-1]
				ordered := prev.Points > r.Points ||
					prev.Points == r.Points && (prev.GoalDiff > r.GoalDiff ||
						prev.GoalDiff == r.GoalDiff && prev.GoalsFor >= r.GoalsFor)
				assert.True(t, ordered, "rows %d and %d out of order", i-1, i)
			}
		}
	})

	t.Run("full tie sorted by name", func(t *testing.T) {
		scores := []model.MatchScore{{HomeTeamID: "b", AwayTeamID: "a", ScoreHome: 1, ScoreAway: 1}}

		rows := BuildStandings(scores, names)
		require.Len(t, rows, 2)
		assert.Equal(t, "Ajax", rows[0].TeamName)
		assert.Equal(t, "PSV", rows[1].TeamName)
	})

	t.Run("deleted team dropped", func(t *testing.T) {
		scores := []model.MatchScore{{HomeTeamID: "a", AwayTeamID: "gone", ScoreHome: 2, ScoreAway: 0}}

		rows := BuildStandings(scores, names)
		require.Len(t, rows, 1)
		assert.Equal(t, "a", rows[0].TeamID)
		assert.Equal(t, 3, rows[0].Points)
	})

	t.Run("no matches", func(t *testing.T) {
		rows := BuildStandings(nil, names)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func TestService_GetLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FinishedScores", ctx).Return([]model.MatchScore{
			{HomeTeamID: "a", AwayTeamID: "b", ScoreHome: 1, ScoreAway: 0},
			{HomeTeamID: "b", AwayTeamID: "a", ScoreHome: 0, ScoreAway: 0},
		}, nil)
		repo.On("TeamNames", ctx, []string{"a", "b"}).Return(map[string]string{"a": "Ajax", "b": "PSV"}, nil)

		rows, err := New(repo, zap.NewNop().Sugar()).GetLeaderboard(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 4, rows[0].Points)
		repo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FinishedScores", ctx).Return(nil, errors.New("database error"))

		_, err := New(repo, zap.NewNop().Sugar()).GetLeaderboard(ctx)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "TeamNames", mock.Anything, mock.Anything)
	})
}

func TestService_GetPlayers(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		field      string
		order      string
		wantColumn string
		wantDesc   bool
	}{
		{name: "defaults", wantColumn: "rating", wantDesc: true},
		{name: "goals ascending", field: "goals", order: "asc", wantColumn: "goals", wantDesc: false},
		{name: "unknown field", field: "salary; DROP TABLE players", order: "asc", wantColumn: "rating", wantDesc: false},
		{name: "unknown order", field: "name", order: "sideways", wantColumn: "name", wantDesc: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			repo.On("Players", ctx, tt.wantColumn, tt.wantDesc, MaxPlayers).Return([]model.PlayerRow{}, nil)

			rows, err := New(repo, zap.NewNop().Sugar()).GetPlayers(ctx, tt.field, tt.order)
			require.NoError(t, err)
			assert.NotNil(t, rows)
			repo.AssertExpectations(t)
		})
	}
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultTopTeams, NormalizeLimit(0))
	assert.Equal(t, DefaultTopTeams, NormalizeLimit(-3))
	assert.Equal(t, 7, NormalizeLimit(7))
	assert.Equal(t, MaxTopTeams, NormalizeLimit(50))
	assert.Equal(t, MaxTopTeams, NormalizeLimit(1000))
}

func TestService_GetTopTeams(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("TopTeams", ctx, false, 5).Return([]model.TeamSummary{{ID: "a"}}, nil)
	repo.On("TopTeams", ctx, true, DefaultTopTeams).Return([]model.TeamSummary{}, nil)
	svc := New(repo, zap.NewNop().Sugar())

	teams, err := svc.GetTopTeams(ctx, 5, "asc")
	require.NoError(t, err)
	assert.Len(t, teams, 1)

	_, err = svc.GetTopTeams(ctx, 0, "")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
