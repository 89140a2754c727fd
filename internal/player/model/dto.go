// Package model provides DTOs and errors for roster operations.
package model

import (
	"strings"

	teamModel "github.com/clubdesk/matchday/internal/team/model"
)

// AddPlayerRequest is the body of POST /api/teams/:id/players.
type AddPlayerRequest struct {
	Name     string `json:"name" validate:"max=255"`
	Position string `json:"position" validate:"max=64"`
}

// UpdatePlayerRequest is the body of PATCH /api/teams/:id/players/:playerId.
type UpdatePlayerRequest struct {
	Name     *string  `json:"name" validate:"omitempty,max=255"`
	Position *string  `json:"position" validate:"omitempty,max=64"`
	Matches  *int     `json:"matches" validate:"omitempty,min=0"`
	Goals    *int     `json:"goals" validate:"omitempty,min=0"`
	Assists  *int     `json:"assists" validate:"omitempty,min=0"`
	Rating   *float64 `json:"rating" validate:"omitempty,min=0,max=100"`
}

// Updates returns the column assignments of the request. Blank text
// fields are ignored.
func (r *UpdatePlayerRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Name != nil {
		if name := strings.TrimSpace(*r.Name); name != "" {
			updates["name"] = name
		}
	}
	if r.Position != nil {
		if position := strings.TrimSpace(*r.Position); position != "" {
			updates["position"] = position
		}
	}
	if r.Matches != nil {
		updates["matches"] = *r.Matches
	}
	if r.Goals != nil {
		updates["goals"] = *r.Goals
	}
	if r.Assists != nil {
		updates["assists"] = *r.Assists
	}
	if r.Rating != nil {
		updates["rating"] = *r.Rating
	}
	return updates
}

// TransferRequest is the body of POST /api/teams/transfer.
type TransferRequest struct {
	FromTeamID string `json:"fromTeamId"`
	ToTeamID   string `json:"toTeamId"`
	PlayerID   string `json:"playerId"`
}

// TransferResponse reports a completed transfer.
type TransferResponse struct {
	Message string           `json:"message"`
	Player  teamModel.Player `json:"player"`
}
