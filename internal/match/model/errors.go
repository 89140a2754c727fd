package model

import "github.com/clubdesk/matchday/internal/apperr"

var (
	// ErrMatchNotFound indicates that the requested match does not exist.
	ErrMatchNotFound = apperr.NotFound("match not found")
	// ErrEventNotFound indicates that the match has no event with the given id.
	ErrEventNotFound = apperr.NotFound("event not found")
	// ErrTeamNotFound indicates that a participant team does not exist.
	ErrTeamNotFound = apperr.NotFound("team not found")
	// ErrInvalidMatchID indicates a malformed match identifier.
	ErrInvalidMatchID = apperr.Validation("invalid match id")
	// ErrInvalidEventID indicates a malformed event identifier.
	ErrInvalidEventID = apperr.Validation("invalid event id")
	// ErrInvalidTeamID indicates a malformed participant identifier.
	ErrInvalidTeamID = apperr.Validation("invalid team id")
	// ErrTeamsRequired indicates a match without home or away team.
	ErrTeamsRequired = apperr.Validation("homeTeamId and awayTeamId are required")
	// ErrSameTeams indicates a match of a team against itself.
	ErrSameTeams = apperr.Validation("home and away teams must differ")
	// ErrDateRequired indicates a match without a date.
	ErrDateRequired = apperr.Validation("date is required")
	// ErrInvalidStatus indicates a status outside the known set.
	ErrInvalidStatus = apperr.Validation("status must be one of: scheduled, live, finished")
	// ErrEventFieldsRequired indicates an event without type, minute or team.
	ErrEventFieldsRequired = apperr.Validation("type, minute and teamId are required")
	// ErrInvalidEventType indicates an event type outside the known set.
	ErrInvalidEventType = apperr.Validation("type must be one of: goal, yellow, red, sub")
	// ErrInvalidMinute indicates a minute outside the allowed range.
	ErrInvalidMinute = apperr.Validation("minute must be between 0 and 130")
	// ErrTeamNotInMatch indicates an event for a team that does not play the match.
	ErrTeamNotInMatch = apperr.Validation("teamId must be the home or away team")
	// ErrTeamsLocked indicates a participant change on a match that already has events.
	ErrTeamsLocked = apperr.Conflict("teams cannot change once events are recorded")
)
