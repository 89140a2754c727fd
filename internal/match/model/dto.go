// Package model provides domain models and DTOs for match module.
package model

import (
	"strings"
	"time"
)

// CreateMatchRequest is the body of POST /api/matches.
type CreateMatchRequest struct {
	HomeTeamID string     `json:"homeTeamId"`
	AwayTeamID string     `json:"awayTeamId"`
	Date       *time.Time `json:"date"`
	Status     string     `json:"status"`
}

// UpdateMatchRequest is the body of PUT /api/matches/:id. Nil fields are left unchanged.
type UpdateMatchRequest struct {
	HomeTeamID *string    `json:"homeTeamId"`
	AwayTeamID *string    `json:"awayTeamId"`
	Date       *time.Time `json:"date"`
	Status     *string    `json:"status"`
}

// AddEventRequest is the body of POST /api/matches/:id/events.
type AddEventRequest struct {
	Type       string `json:"type"`
	Minute     *int   `json:"minute"`
	TeamID     string `json:"teamId"`
	PlayerName string `json:"playerName"`
	AssistName string `json:"assistName"`
	Note       string `json:"note"`
}

// Normalize trims the text fields of the request.
func (r *AddEventRequest) Normalize() {
	r.Type = strings.TrimSpace(r.Type)
	r.TeamID = strings.TrimSpace(r.TeamID)
	r.PlayerName = strings.TrimSpace(r.PlayerName)
	r.AssistName = strings.TrimSpace(r.AssistName)
	r.Note = strings.TrimSpace(r.Note)
}

// DeleteMatchResponse confirms a deletion.
type DeleteMatchResponse struct {
	Message string `json:"message"`
}

// ValidStatus reports whether status is a known match status.
func ValidStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusLive, StatusFinished:
		return true
	}
	return false
}

// ValidEventType reports whether t is a known event type.
func ValidEventType(t string) bool {
	switch t {
	case EventGoal, EventYellow, EventRed, EventSub:
		return true
	}
	return false
}
