// Package service provides business logic layer for match module.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/auth"
	matchModel "github.com/clubdesk/matchday/internal/match/model"
	"github.com/clubdesk/matchday/internal/match/repository"
)

// Publisher receives a match snapshot after every committed change and the
// id of every deleted match.
type Publisher interface {
	PublishMatch(match *matchModel.Match)
	PublishDeleted(matchID string)
}

// NopPublisher discards snapshots.
type NopPublisher struct{}

// PublishMatch implements Publisher.
func (NopPublisher) PublishMatch(*matchModel.Match) {}

// PublishDeleted implements Publisher.
func (NopPublisher) PublishDeleted(string) {}

// Service defines the interface for match business logic operations.
type Service interface {
	// ListMatches returns all matches, latest first.
	ListMatches(ctx context.Context) ([]matchModel.Match, error)

	// GetMatch returns a match with its events.
	GetMatch(ctx context.Context, id string) (*matchModel.Match, error)

	// CreateMatch schedules a match between two existing teams.
	CreateMatch(ctx context.Context, req *matchModel.CreateMatchRequest) (*matchModel.Match, error)

	// UpdateMatch partially updates a match.
	UpdateMatch(ctx context.Context, id string, req *matchModel.UpdateMatchRequest) (*matchModel.Match, error)

	// DeleteMatch removes a match and its events.
	DeleteMatch(ctx context.Context, id string) error

	// AddEvent appends an event and, for goals, raises the side's score.
	AddEvent(ctx context.Context, matchID string, req *matchModel.AddEventRequest) (*matchModel.Match, error)

	// DeleteEvent removes an event and, for goals, lowers the side's score.
	DeleteEvent(ctx context.Context, matchID, eventID string) (*matchModel.Match, error)
}

type service struct {
	repo      repository.Repository
	db        *gorm.DB
	publisher Publisher
	logger    *zap.SugaredLogger
}

// New creates a new match service instance.
func New(repo repository.Repository, db *gorm.DB, publisher Publisher, logger *zap.SugaredLogger) Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &service{
		repo:      repo,
		db:        db,
		publisher: publisher,
		logger:    logger,
	}
}

func validateID(id string, invalid error) error {
	if _, err := uuid.Parse(id); err != nil {
		return invalid
	}
	return nil
}

// ListMatches returns all matches, latest first.
func (s *service) ListMatches(ctx context.Context) ([]matchModel.Match, error) {
	return s.repo.List(ctx)
}

// GetMatch returns a match with its events.
func (s *service) GetMatch(ctx context.Context, id string) (*matchModel.Match, error) {
	if err := validateID(id, matchModel.ErrInvalidMatchID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func validateParticipants(homeID, awayID string) error {
	if homeID == "" || awayID == "" {
		return matchModel.ErrTeamsRequired
	}
	if err := validateID(homeID, matchModel.ErrInvalidTeamID); err != nil {
		return err
	}
	if err := validateID(awayID, matchModel.ErrInvalidTeamID); err != nil {
		return err
	}
	if homeID == awayID {
		return matchModel.ErrSameTeams
	}
	return nil
}

func requireTeams(ctx context.Context, repo repository.Repository, ids ...string) error {
	for _, id := range ids {
		exists, err := repo.TeamExists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return matchModel.ErrTeamNotFound
		}
	}
	return nil
}

// CreateMatch schedules a match between two existing teams.
func (s *service) CreateMatch(ctx context.Context, req *matchModel.CreateMatchRequest) (*matchModel.Match, error) {
	homeID := strings.TrimSpace(req.HomeTeamID)
	awayID := strings.TrimSpace(req.AwayTeamID)
	if err := validateParticipants(homeID, awayID); err != nil {
		return nil, err
	}
	if req.Date == nil || req.Date.IsZero() {
		return nil, matchModel.ErrDateRequired
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = matchModel.StatusScheduled
	}
	if !matchModel.ValidStatus(status) {
		return nil, matchModel.ErrInvalidStatus
	}

	if err := requireTeams(ctx, s.repo, homeID, awayID); err != nil {
		return nil, err
	}

	match := &matchModel.Match{
		ID:         uuid.NewString(),
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		Date:       req.Date.UTC(),
		Status:     status,
		Events:     []matchModel.Event{},
	}
	if err := s.repo.Create(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Infow("match created", "match_id", match.ID, "home_team_id", homeID, "away_team_id", awayID, "actor", auth.ActorID(ctx))
	s.publisher.PublishMatch(match)
	return match, nil
}

// UpdateMatch partially updates a match. Status may move between any two
// values. Participants can only change while the event log is empty.
func (s *service) UpdateMatch(ctx context.Context, id string, req *matchModel.UpdateMatchRequest) (*matchModel.Match, error) {
	if err := validateID(id, matchModel.ErrInvalidMatchID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Date != nil {
		if req.Date.IsZero() {
			return nil, matchModel.ErrDateRequired
		}
		updates["date"] = req.Date.UTC()
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if !matchModel.ValidStatus(status) {
			return nil, matchModel.ErrInvalidStatus
		}
		updates["status"] = status
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		current, err := txRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.HomeTeamID != nil || req.AwayTeamID != nil {
			homeID, awayID := current.HomeTeamID, current.AwayTeamID
			if req.HomeTeamID != nil {
				homeID = strings.TrimSpace(*req.HomeTeamID)
			}
			if req.AwayTeamID != nil {
				awayID = strings.TrimSpace(*req.AwayTeamID)
			}
			if homeID != current.HomeTeamID || awayID != current.AwayTeamID {
				if err := validateParticipants(homeID, awayID); err != nil {
					return err
				}
				if len(current.Events) > 0 {
					return matchModel.ErrTeamsLocked
				}
				if err := requireTeams(ctx, txRepo, homeID, awayID); err != nil {
					return err
				}
				updates["home_team_id"] = homeID
				updates["away_team_id"] = awayID
			}
		}

		if len(updates) == 0 {
			return nil
		}
		return txRepo.Update(ctx, id, updates)
	})
	if err != nil {
		return nil, err
	}

	match, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		s.logger.Infow("match updated", "match_id", id, "status", match.Status, "actor", auth.ActorID(ctx))
		s.publisher.PublishMatch(match)
	}
	return match, nil
}

// DeleteMatch removes a match and its events.
func (s *service) DeleteMatch(ctx context.Context, id string) error {
	if err := validateID(id, matchModel.ErrInvalidMatchID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repository.New(tx, s.logger).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("match deleted", "match_id", id, "actor", auth.ActorID(ctx))
	s.publisher.PublishDeleted(id)
	return nil
}

func validateEvent(req *matchModel.AddEventRequest) error {
	req.Normalize()
	if req.Type == "" || req.Minute == nil || req.TeamID == "" {
		return matchModel.ErrEventFieldsRequired
	}
	if !matchModel.ValidEventType(req.Type) {
		return matchModel.ErrInvalidEventType
	}
	if *req.Minute < matchModel.MinMinute || *req.Minute > matchModel.MaxMinute {
		return matchModel.ErrInvalidMinute
	}
	return nil
}

// AddEvent appends an event and, for goals, raises the side's score. Both
// writes commit together.
func (s *service) AddEvent(ctx context.Context, matchID string, req *matchModel.AddEventRequest) (*matchModel.Match, error) {
	if err := validateID(matchID, matchModel.ErrInvalidMatchID); err != nil {
		return nil, err
	}
	if err := validateEvent(req); err != nil {
		return nil, err
	}

	event := &matchModel.Event{
		MatchID:    matchID,
		ID:         uuid.NewString(),
		Type:       req.Type,
		Minute:     *req.Minute,
		TeamID:     req.TeamID,
		PlayerName: req.PlayerName,
		AssistName: req.AssistName,
		Note:       req.Note,
		CreatedAt:  time.Now().UTC(),
	}

	var match *matchModel.Match
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		current, err := txRepo.GetByID(ctx, matchID)
		if err != nil {
			return err
		}
		side, ok := current.SideOf(req.TeamID)
		if !ok {
			return matchModel.ErrTeamNotInMatch
		}

		if err := txRepo.AppendEvent(ctx, event); err != nil {
			return err
		}
		if event.Type == matchModel.EventGoal {
			if err := txRepo.IncrementScore(ctx, matchID, side); err != nil {
				return err
			}
		}

		match, err = txRepo.GetByID(ctx, matchID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("match event recorded",
		"match_id", matchID,
		"event_id", event.ID,
		"type", event.Type,
		"minute", event.Minute,
		"actor", auth.ActorID(ctx),
	)
	s.publisher.PublishMatch(match)
	return match, nil
}

// DeleteEvent removes an event and, for goals, lowers the side's score
// clamped at zero. Both writes commit together.
func (s *service) DeleteEvent(ctx context.Context, matchID, eventID string) (*matchModel.Match, error) {
	if err := validateID(matchID, matchModel.ErrInvalidMatchID); err != nil {
		return nil, err
	}
	if err := validateID(eventID, matchModel.ErrInvalidEventID); err != nil {
		return nil, err
	}

	var match *matchModel.Match
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		current, err := txRepo.GetByID(ctx, matchID)
		if err != nil {
			return err
		}
		event, err := txRepo.GetEvent(ctx, matchID, eventID)
		if err != nil {
			return err
		}

		deleted, err := txRepo.DeleteEvent(ctx, matchID, eventID)
		if err != nil {
			return err
		}
		if !deleted {
			return matchModel.ErrEventNotFound
		}
		if event.Type == matchModel.EventGoal {
			side, ok := current.SideOf(event.TeamID)
			if !ok {
				s.logger.Warnw("goal event of a team outside the match, score unchanged",
					"match_id", matchID, "event_id", eventID, "team_id", event.TeamID)
			} else if err := txRepo.DecrementScore(ctx, matchID, side); err != nil {
				return err
			}
		}

		match, err = txRepo.GetByID(ctx, matchID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("match event deleted", "match_id", matchID, "event_id", eventID, "actor", auth.ActorID(ctx))
	s.publisher.PublishMatch(match)
	return match, nil
}
