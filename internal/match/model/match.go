package model

import (
	"time"

	"gorm.io/gorm"
)

// Match statuses.
const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinished  = "finished"
)

// Event types.
const (
	EventGoal   = "goal"
	EventYellow = "yellow"
	EventRed    = "red"
	EventSub    = "sub"
)

// Minute bounds of an event, stoppage time of extra time included.
const (
	MinMinute = 0
	MaxMinute = 130
)

// Side identifies the home or away participant of a match.
type Side int

// Sides.
const (
	Home Side = iota
	Away
)

// ScoreColumn returns the score column of the side.
func (s Side) ScoreColumn() string {
	if s == Home {
		return "score_home"
	}
	return "score_away"
}

// Match is a fixture between two teams with its ordered event log.
type Match struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	HomeTeamID string    `gorm:"column:home_team_id;type:varchar(36);not null" json:"homeTeamId"`
	AwayTeamID string    `gorm:"column:away_team_id;type:varchar(36);not null" json:"awayTeamId"`
	Date       time.Time `gorm:"column:date;not null" json:"date"`
	Status     string    `gorm:"column:status;type:varchar(16);not null;index:idx_matches_status" json:"status"`
	ScoreHome  int       `gorm:"column:score_home;not null" json:"scoreHome"`
	ScoreAway  int       `gorm:"column:score_away;not null" json:"scoreAway"`
	Events     []Event   `gorm:"foreignKey:MatchID;references:ID" json:"events"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Match) TableName() string {
	return "matches"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (m *Match) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}

// SideOf returns the side teamID plays on, if it plays at all.
func (m *Match) SideOf(teamID string) (Side, bool) {
	switch teamID {
	case m.HomeTeamID:
		return Home, true
	case m.AwayTeamID:
		return Away, true
	default:
		return Away, false
	}
}

// Event is an entry in a match's event log.
type Event struct {
	MatchID    string    `gorm:"primaryKey;column:match_id;type:varchar(36)" json:"-"`
	ID         string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Type       string    `gorm:"column:type;type:varchar(16);not null" json:"type"`
	Minute     int       `gorm:"column:minute;not null" json:"minute"`
	TeamID     string    `gorm:"column:team_id;type:varchar(36);not null" json:"teamId"`
	PlayerName string    `gorm:"column:player_name;type:varchar(255);not null" json:"playerName"`
	AssistName string    `gorm:"column:assist_name;type:varchar(255);not null" json:"assistName"`
	Note       string    `gorm:"column:note;type:text;not null" json:"note"`
	Seq        int       `gorm:"column:seq;not null" json:"-"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"-"`
}

// TableName specifies the table name for GORM.
func (Event) TableName() string {
	return "match_events"
}
