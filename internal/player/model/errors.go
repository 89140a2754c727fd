package model

import "github.com/clubdesk/matchday/internal/apperr"

var (
	// ErrTransferFieldsRequired indicates a transfer request with a missing identifier.
	ErrTransferFieldsRequired = apperr.Validation("fromTeamId, toTeamId and playerId are required")
	// ErrInvalidTransferID indicates a malformed identifier in a transfer request.
	ErrInvalidTransferID = apperr.Validation("invalid id")
	// ErrSameTeam indicates a transfer whose source and destination coincide.
	ErrSameTeam = apperr.Conflict("player already in this team")
	// ErrDestinationNotFound indicates that the destination team does not exist.
	ErrDestinationNotFound = apperr.NotFound("destination team not found")
	// ErrPlayerNotInSource indicates that the source roster does not hold the player.
	ErrPlayerNotInSource = apperr.NotFound("player not found in source team")
	// ErrPlayerNameRequired indicates an empty player name.
	ErrPlayerNameRequired = apperr.Validation("player name is required")
)
