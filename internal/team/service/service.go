// Package service provides business logic layer for team module.
package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/auth"
	teamModel "github.com/clubdesk/matchday/internal/team/model"
	"github.com/clubdesk/matchday/internal/team/repository"
	"github.com/clubdesk/matchday/internal/validation"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// ListTeams returns all teams with rosters.
	ListTeams(ctx context.Context) ([]teamModel.Team, error)

	// GetTeam returns a team with its roster.
	GetTeam(ctx context.Context, id string) (*teamModel.Team, error)

	// CreateTeam creates a team, filling defaults for omitted fields.
	CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.Team, error)

	// UpdateTeam partially updates a team.
	UpdateTeam(ctx context.Context, id string, req *teamModel.UpdateTeamRequest) (*teamModel.Team, error)

	// DeleteTeam removes a team and its roster.
	DeleteTeam(ctx context.Context, id string) error
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// ValidateID checks that id is a well-formed team identifier.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return teamModel.ErrInvalidTeamID
	}
	return nil
}

// ListTeams returns all teams with rosters.
func (s *service) ListTeams(ctx context.Context) ([]teamModel.Team, error) {
	return s.repo.List(ctx)
}

// GetTeam returns a team with its roster.
func (s *service) GetTeam(ctx context.Context, id string) (*teamModel.Team, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// CreateTeam creates a team, filling defaults for omitted fields.
func (s *service) CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.Team, error) {
	req.Normalize()
	if req.Name == "" {
		return nil, teamModel.ErrInvalidTeamName
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	team := &teamModel.Team{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Country:     orDefault(req.Country),
		FoundedYear: teamModel.DefaultFoundedYear,
		Coach:       orDefault(req.Coach),
		Stadium:     orDefault(req.Stadium),
		League:      orDefault(req.League),
		Rating:      teamModel.DefaultRating,
		LogoURL:     req.LogoURL,
		Players:     []teamModel.Player{},
	}
	if req.FoundedYear != nil {
		team.FoundedYear = *req.FoundedYear
	}
	if req.Rating != nil {
		team.Rating = *req.Rating
	}

	if err := s.repo.Create(ctx, team); err != nil {
		return nil, err
	}

	s.logger.Infow("team created", "team_id", team.ID, "name", team.Name, "actor", auth.ActorID(ctx))
	return team, nil
}

// UpdateTeam partially updates a team.
func (s *service) UpdateTeam(ctx context.Context, id string, req *teamModel.UpdateTeamRequest) (*teamModel.Team, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	updates := req.Updates()
	if req.Name != nil && *req.Name == "" {
		return nil, teamModel.ErrInvalidTeamName
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
		s.logger.Infow("team updated", "team_id", id, "fields", len(updates), "actor", auth.ActorID(ctx))
	}

	return s.repo.GetByID(ctx, id)
}

// DeleteTeam removes a team and its roster.
func (s *service) DeleteTeam(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repository.New(tx, s.logger).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("team deleted", "team_id", id, "actor", auth.ActorID(ctx))
	return nil
}

func orDefault(value string) string {
	if value == "" {
		return teamModel.DefaultText
	}
	return value
}
