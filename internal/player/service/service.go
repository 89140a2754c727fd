// Package service implements roster maintenance and player transfers.
package service

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/auth"
	playerModel "github.com/clubdesk/matchday/internal/player/model"
	"github.com/clubdesk/matchday/internal/player/repository"
	teamModel "github.com/clubdesk/matchday/internal/team/model"
	teamRepository "github.com/clubdesk/matchday/internal/team/repository"
	teamService "github.com/clubdesk/matchday/internal/team/service"
	"github.com/clubdesk/matchday/internal/validation"
)

// TransferredMessage is returned with every successful transfer.
const TransferredMessage = "Transfer completed"

// Service defines roster operations. Every mutation except Transfer
// returns the team with its updated roster.
type Service interface {
	// AddPlayer appends a new player with zero stats to the roster.
	AddPlayer(ctx context.Context, teamID string, req *playerModel.AddPlayerRequest) (*teamModel.Team, error)

	// UpdatePlayer partially updates a roster entry.
	UpdatePlayer(ctx context.Context, teamID, playerID string, req *playerModel.UpdatePlayerRequest) (*teamModel.Team, error)

	// IncrementGoals adds one goal to a player.
	IncrementGoals(ctx context.Context, teamID, playerID string) (*teamModel.Team, error)

	// RemovePlayer removes a player from the roster.
	RemovePlayer(ctx context.Context, teamID, playerID string) (*teamModel.Team, error)

	// Transfer moves a player between rosters atomically.
	Transfer(ctx context.Context, req *playerModel.TransferRequest) (*playerModel.TransferResponse, error)
}

type service struct {
	repo   repository.Repository
	teams  teamRepository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new roster service instance.
func New(repo repository.Repository, teams teamRepository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		teams:  teams,
		db:     db,
		logger: logger,
	}
}

func validateIDs(teamID, playerID string) error {
	if err := teamService.ValidateID(teamID); err != nil {
		return err
	}
	if _, err := uuid.Parse(playerID); err != nil {
		return teamModel.ErrInvalidPlayerID
	}
	return nil
}

func requireTeam(ctx context.Context, repo repository.Repository, teamID string) error {
	exists, err := repo.TeamExists(ctx, teamID)
	if err != nil {
		return err
	}
	if !exists {
		return teamModel.ErrTeamNotFound
	}
	return nil
}

// AddPlayer appends a new player with zero stats to the roster.
func (s *service) AddPlayer(ctx context.Context, teamID string, req *playerModel.AddPlayerRequest) (*teamModel.Team, error) {
	if err := teamService.ValidateID(teamID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, playerModel.ErrPlayerNameRequired
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	position := strings.TrimSpace(req.Position)
	if position == "" {
		position = teamModel.DefaultText
	}

	player := &teamModel.Player{
		TeamID:   teamID,
		ID:       uuid.NewString(),
		Name:     name,
		Position: position,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		if err := requireTeam(ctx, txRepo, teamID); err != nil {
			return err
		}
		return txRepo.Append(ctx, player)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("player added", "team_id", teamID, "player_id", player.ID, "actor", auth.ActorID(ctx))
	return s.teams.GetByID(ctx, teamID)
}

// UpdatePlayer partially updates a roster entry.
func (s *service) UpdatePlayer(
	ctx context.Context,
	teamID, playerID string,
	req *playerModel.UpdatePlayerRequest,
) (*teamModel.Team, error) {
	if err := validateIDs(teamID, playerID); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	updates := req.Updates()
	if len(updates) == 0 {
		return nil, teamModel.ErrNoFields
	}

	if err := requireTeam(ctx, s.repo, teamID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, teamID, playerID, updates); err != nil {
		return nil, err
	}

	s.logger.Infow("player updated", "team_id", teamID, "player_id", playerID, "actor", auth.ActorID(ctx))
	return s.teams.GetByID(ctx, teamID)
}

// IncrementGoals adds one goal to a player.
func (s *service) IncrementGoals(ctx context.Context, teamID, playerID string) (*teamModel.Team, error) {
	if err := validateIDs(teamID, playerID); err != nil {
		return nil, err
	}
	if err := requireTeam(ctx, s.repo, teamID); err != nil {
		return nil, err
	}
	if err := s.repo.IncrementGoals(ctx, teamID, playerID); err != nil {
		return nil, err
	}
	return s.teams.GetByID(ctx, teamID)
}

// RemovePlayer removes a player from the roster. Removing a player the
// roster does not hold leaves it unchanged.
func (s *service) RemovePlayer(ctx context.Context, teamID, playerID string) (*teamModel.Team, error) {
	if err := validateIDs(teamID, playerID); err != nil {
		return nil, err
	}
	if err := requireTeam(ctx, s.repo, teamID); err != nil {
		return nil, err
	}

	removed, err := s.repo.Detach(ctx, teamID, playerID)
	if err != nil {
		return nil, err
	}
	if removed {
		s.logger.Infow("player removed", "team_id", teamID, "player_id", playerID, "actor", auth.ActorID(ctx))
	}
	return s.teams.GetByID(ctx, teamID)
}

func validateTransfer(req *playerModel.TransferRequest) error {
	req.FromTeamID = strings.TrimSpace(req.FromTeamID)
	req.ToTeamID = strings.TrimSpace(req.ToTeamID)
	req.PlayerID = strings.TrimSpace(req.PlayerID)

	if req.FromTeamID == "" || req.ToTeamID == "" || req.PlayerID == "" {
		return playerModel.ErrTransferFieldsRequired
	}
	for _, id := range []string{req.FromTeamID, req.ToTeamID, req.PlayerID} {
		if _, err := uuid.Parse(id); err != nil {
			return playerModel.ErrInvalidTransferID
		}
	}
	if req.FromTeamID == req.ToTeamID {
		return playerModel.ErrSameTeam
	}
	return nil
}

// Transfer moves a player from one roster to the end of another, keeping
// the player's id and stats. The removal is a guarded delete so a player
// that left the source roster concurrently is reported as not found and
// nothing is written.
func (s *service) Transfer(ctx context.Context, req *playerModel.TransferRequest) (*playerModel.TransferResponse, error) {
	if err := validateTransfer(req); err != nil {
		return nil, err
	}

	var moved teamModel.Player
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		exists, err := txRepo.TeamExists(ctx, req.ToTeamID)
		if err != nil {
			return err
		}
		if !exists {
			return playerModel.ErrDestinationNotFound
		}

		player, err := txRepo.GetPlayer(ctx, req.FromTeamID, req.PlayerID)
		if err != nil {
			if errors.Is(err, teamModel.ErrPlayerNotFound) {
				return playerModel.ErrPlayerNotInSource
			}
			return err
		}

		detached, err := txRepo.Detach(ctx, req.FromTeamID, req.PlayerID)
		if err != nil {
			return err
		}
		if !detached {
			return playerModel.ErrPlayerNotInSource
		}

		player.TeamID = req.ToTeamID
		if err := txRepo.Append(ctx, player); err != nil {
			return err
		}
		moved = *player
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("player transferred",
		"player_id", req.PlayerID,
		"from_team_id", req.FromTeamID,
		"to_team_id", req.ToTeamID,
		"actor", auth.ActorID(ctx),
	)
	return &playerModel.TransferResponse{Message: TransferredMessage, Player: moved}, nil
}
