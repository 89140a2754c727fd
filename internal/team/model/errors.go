package model

import "github.com/clubdesk/matchday/internal/apperr"

var (
	// ErrTeamExists indicates that a team with the given name already exists.
	ErrTeamExists = apperr.Conflict("team already exists")
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = apperr.NotFound("team not found")
	// ErrInvalidTeamID indicates a malformed team identifier.
	ErrInvalidTeamID = apperr.Validation("invalid team id")
	// ErrInvalidTeamName indicates an empty team name.
	ErrInvalidTeamName = apperr.Validation("name is required")
	// ErrNoFields indicates an update request without any known field.
	ErrNoFields = apperr.Validation("no valid fields to update")
	// ErrPlayerNotFound indicates that the player is not in the team roster.
	ErrPlayerNotFound = apperr.NotFound("player not found")
	// ErrInvalidPlayerID indicates a malformed player identifier.
	ErrInvalidPlayerID = apperr.Validation("invalid player id")
)
