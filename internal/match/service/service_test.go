package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/apperr"
	matchModel "github.com/clubdesk/matchday/internal/match/model"
	"github.com/clubdesk/matchday/internal/match/repository"
	teamModel "github.com/clubdesk/matchday/internal/team/model"
	"github.com/clubdesk/matchday/internal/testutil"
)

type recordingPublisher struct {
	mu        sync.Mutex
	snapshots []matchModel.Match
	deleted   []string
}

func (p *recordingPublisher) PublishMatch(m *matchModel.Match) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = append(p.snapshots, *m)
}

func (p *recordingPublisher) PublishDeleted(matchID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, matchID)
}

func (p *recordingPublisher) last() matchModel.Match {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshots[len(p.snapshots)-1]
}

type fixture struct {
	db        *gorm.DB
	svc       Service
	publisher *recordingPublisher
	home      string
	away      string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenSQLite(t, &teamModel.Team{}, &teamModel.Player{}, &matchModel.Match{}, &matchModel.Event{})
	logger := testutil.Logger(t)
	f := &fixture{db: db, publisher: &recordingPublisher{}, home: uuid.NewString(), away: uuid.NewString()}
	require.NoError(t, db.Create(&teamModel.Team{ID: f.home, Name: "Ajax"}).Error)
	require.NoError(t, db.Create(&teamModel.Team{ID: f.away, Name: "PSV"}).Error)
	f.svc = New(repository.New(db, logger), db, f.publisher, logger)
	return f
}

func (f *fixture) match(t *testing.T) *matchModel.Match {
	t.Helper()
	date := time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC)
	m, err := f.svc.CreateMatch(context.Background(), &matchModel.CreateMatchRequest{HomeTeamID: f.home, AwayTeamID: f.away, Date: &date})
	require.NoError(t, err)
	return m
}

func minute(v int) *int { return &v }

func TestService_CreateMatch(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	date := time.Now()

	m := f.match(t)
	assert.Equal(t, matchModel.StatusScheduled, m.Status)
	assert.Zero(t, m.ScoreHome)
	assert.Zero(t, m.ScoreAway)
	assert.Empty(t, m.Events)
	assert.Len(t, f.publisher.snapshots, 1)

	tests := []struct {
		name string
		req  matchModel.CreateMatchRequest
		want error
	}{
		{name: "missing team", req: matchModel.CreateMatchRequest{HomeTeamID: f.home, Date: &date}, want: matchModel.ErrTeamsRequired},
		{name: "malformed team", req: matchModel.CreateMatchRequest{HomeTeamID: f.home, AwayTeamID: "psv", Date: &date}, want: matchModel.ErrInvalidTeamID},
		{name: "same team", req: matchModel.CreateMatchRequest{HomeTeamID: f.home, AwayTeamID: f.home, Date: &date}, want: matchModel.ErrSameTeams},
		{name: "no date", req: matchModel.CreateMatchRequest{HomeTeamID: f.home, AwayTeamID: f.away}, want: matchModel.ErrDateRequired},
		{name: "bad status", req: matchModel.CreateMatchRequest{HomeTeamID: f.home, AwayTeamID: f.away, Date: &date, Status: "paused"}, want: matchModel.ErrInvalidStatus},
		{name: "unknown team", req: matchModel.CreateMatchRequest{HomeTeamID: f.home, AwayTeamID: uuid.NewString(), Date: &date}, want: matchModel.ErrTeamNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.svc.CreateMatch(ctx, &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestService_AddEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("goal raises side score", func(t *testing.T) {
		f := setup(t)
		m := f.match(t)

		updated, err := f.svc.AddEvent(ctx, m.ID, &matchModel.AddEventRequest{Type: "goal", Minute: minute(12), TeamID: f.away, PlayerName: "De Jong"})
		require.NoError(t, err)
		assert.Zero(t, updated.ScoreHome)
		assert.Equal(t, 1, updated.ScoreAway)
		require.Len(t, updated.Events, 1)
		assert.Equal(t, "De Jong", updated.Events[0].PlayerName)

		updated, err = f.svc.AddEvent(ctx, m.ID, &matchModel.AddEventRequest{Type: "yellow", Minute: minute(30), TeamID: f.home})
		require.NoError(t, err)
		assert.Zero(t, updated.ScoreHome)
		assert.Equal(t, 1, updated.ScoreAway)
		require.Len(t, updated.Events, 2)
		assert.Equal(t, "yellow", updated.Events[1].Type)

		assert.Equal(t, 1, f.publisher.last().ScoreAway)
		assert.Len(t, f.publisher.last().Events, 2)
	})

	t.Run("validation", func(t *testing.T) {
		f := setup(t)
		m := f.match(t)

		tests := []struct {
			name string
			req  matchModel.AddEventRequest
			want error
		}{
			{name: "missing minute", req: matchModel.AddEventRequest{Type: "goal", TeamID: f.home}, want: matchModel.ErrEventFieldsRequired},
			{name: "unknown type", req: matchModel.AddEventRequest{Type: "corner", Minute: minute(3), TeamID: f.home}, want: matchModel.ErrInvalidEventType},
			{name: "minute too large", req: matchModel.AddEventRequest{Type: "goal", Minute: minute(131), TeamID: f.home}, want: matchModel.ErrInvalidMinute},
			{name: "negative minute", req: matchModel.AddEventRequest{Type: "goal", Minute: minute(-1), TeamID: f.home}, want: matchModel.ErrInvalidMinute},
			{name: "foreign team", req: matchModel.AddEventRequest{Type: "goal", Minute: minute(3), TeamID: uuid.NewString()}, want: matchModel.ErrTeamNotInMatch},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := tt.req
				_, err := f.svc.AddEvent(ctx, m.ID, &req)
				assert.ErrorIs(t, err, tt.want)
				assert.True(t, errors.Is(err, apperr.ErrValidation))
			})
		}

		got, err := f.svc.GetMatch(ctx, m.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Events)
		assert.Zero(t, got.ScoreHome)
	})

	t.Run("boundary minutes accepted", func(t *testing.T) {
		f := setup(t)
		m := f.match(t)

		_, err := f.svc.AddEvent(ctx, m.ID, &matchModel.AddEventRequest{Type: "sub", Minute: minute(0), TeamID: f.home})
		require.NoError(t, err)
		_, err = f.svc.AddEvent(ctx, m.ID, &matchModel.AddEventRequest{Type: "red", Minute: minute(130), TeamID: f.home})
		require.NoError(t, err)
	})

	t.Run("match missing", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.AddEvent(ctx, uuid.NewString(), &matchModel.AddEventRequest{Type: "goal", Minute: minute(1), TeamID: f.home})
		assert.ErrorIs(t, err, matchModel.ErrMatchNotFound)
	})
}

func TestService_DeleteEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("goal lowers side score", func(t *testing.T) {
		f := setup(t)
		m := f.match(t)
		withGoal, err := f.svc.AddEvent(ctx, m.ID, &matchModel.AddEventRequest{Type: "goal", Minute: minute(5), TeamID: f.home})
		require.NoError(t, err)
		goalID := withGoal.Events[0].ID

		updated, err := f.svc.DeleteEvent(ctx, m.ID, goalID)
		require.NoError(t, err)
		assert.Zero(t, updated.ScoreHome)
		assert.Empty(t, updated.Events)
	})

	t.Run("decrement clamps at zero", func(t *testing.T) {
		f := setup(t)
		m := f.match(t)
		withGoal, err := f.svc.AddEvent(ctx, m.ID, &matchModel.AddEventRequest{Type: "goal", Minute: minute(5), TeamID: f.home})
		require.NoError(t, err)
		require.NoError(t, f.db.Model(&matchModel.Match{}).Where("id = ?", m.ID).Update("score_home", 0).Error)

		updated, err := f.svc.DeleteEvent(ctx, m.ID, withGoal.Events[0].ID)
		require.NoError(t, err)
		assert.Zero(t, updated.ScoreHome)
	})

	t.Run("goal of a team outside the match keeps scores", func(t *testing.T) {
		f := setup(t)
		m := f.match(t)
		require.NoError(t, f.db.Model(&matchModel.Match{}).Where("id = ?", m.ID).
			Updates(map[string]interface{}{"score_home": 1, "score_away": 1}).Error)
		stray := matchModel.Event{MatchID: m.ID, ID: uuid.NewString(), Type: matchModel.EventGoal, Minute: 40, TeamID: uuid.NewString(), CreatedAt: time.Now()}
		require.NoError(t, f.db.Create(&stray).Error)

		updated, err := f.svc.DeleteEvent(ctx, m.ID, stray.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.ScoreHome)
		assert.Equal(t, 1, updated.ScoreAway)
		assert.Empty(t, updated.Events)
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)
		m := f.match(t)

		_, err := f.svc.DeleteEvent(ctx, uuid.NewString(), uuid.NewString())
		assert.ErrorIs(t, err, matchModel.ErrMatchNotFound)

		_, err = f.svc.DeleteEvent(ctx, m.ID, uuid.NewString())
		assert.ErrorIs(t, err, matchModel.ErrEventNotFound)

		_, err = f.svc.DeleteEvent(ctx, m.ID, "e1")
		assert.ErrorIs(t, err, matchModel.ErrInvalidEventID)
	})
}

func TestService_UpdateMatch(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	m := f.match(t)

	t.Run("any status transition", func(t *testing.T) {
		for _, status := range []string{"finished", "scheduled", "live", "finished"} {
			s := status
			updated, err := f.svc.UpdateMatch(ctx, m.ID, &matchModel.UpdateMatchRequest{Status: &s})
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		s := "abandoned"
		_, err := f.svc.UpdateMatch(ctx, m.ID, &matchModel.UpdateMatchRequest{Status: &s})
		assert.ErrorIs(t, err, matchModel.ErrInvalidStatus)
	})

	t.Run("swap teams before events", func(t *testing.T) {
		home, away := f.away, f.home
		updated, err := f.svc.UpdateMatch(ctx, m.ID, &matchModel.UpdateMatchRequest{HomeTeamID: &home, AwayTeamID: &away})
		require.NoError(t, err)
		assert.Equal(t, f.away, updated.HomeTeamID)
	})

	t.Run("teams locked after events", func(t *testing.T) {
		_, err := f.svc.AddEvent(ctx, m.ID, &matchModel.AddEventRequest{Type: "yellow", Minute: minute(5), TeamID: f.home})
		require.NoError(t, err)

		home := f.home
		away := f.away
		_, err = f.svc.UpdateMatch(ctx, m.ID, &matchModel.UpdateMatchRequest{HomeTeamID: &home, AwayTeamID: &away})
		assert.ErrorIs(t, err, matchModel.ErrTeamsLocked)
	})

	t.Run("missing match", func(t *testing.T) {
		s := "live"
		_, err := f.svc.UpdateMatch(ctx, uuid.NewString(), &matchModel.UpdateMatchRequest{Status: &s})
		assert.ErrorIs(t, err, matchModel.ErrMatchNotFound)
	})
}

func TestService_DeleteMatch(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	m := f.match(t)
	_, err := f.svc.AddEvent(ctx, m.ID, &matchModel.AddEventRequest{Type: "goal", Minute: minute(5), TeamID: f.home})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteMatch(ctx, m.ID))
	assert.Equal(t, []string{m.ID}, f.publisher.deleted)

	var events int64
	require.NoError(t, f.db.Model(&matchModel.Event{}).Count(&events).Error)
	assert.Zero(t, events)
	assert.ErrorIs(t, f.svc.DeleteMatch(ctx, m.ID), matchModel.ErrMatchNotFound)
	assert.Len(t, f.publisher.deleted, 1)
}

func TestService_ListMatches(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	older := f.match(t)
	later := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	newer, err := f.svc.CreateMatch(ctx, &matchModel.CreateMatchRequest{HomeTeamID: f.away, AwayTeamID: f.home, Date: &later})
	require.NoError(t, err)

	matches, err := f.svc.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, newer.ID, matches[0].ID)
	assert.Equal(t, older.ID, matches[1].ID)
	assert.NotNil(t, matches[0].Events)
}
