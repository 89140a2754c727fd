package model

import (
	"time"

	"gorm.io/gorm"
)

// Team defaults applied when a field is omitted on creation.
const (
	DefaultText        = "Unknown"
	DefaultFoundedYear = 1900
	DefaultRating      = 80
)

// Team represents a football club with its roster.
type Team struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_teams_name" json:"name"`
	Country     string    `gorm:"column:country;type:varchar(255);not null" json:"country"`
	FoundedYear int       `gorm:"column:founded_year;not null" json:"foundedYear"`
	Coach       string    `gorm:"column:coach;type:varchar(255);not null" json:"coach"`
	Stadium     string    `gorm:"column:stadium;type:varchar(255);not null" json:"stadium"`
	League      string    `gorm:"column:league;type:varchar(255);not null" json:"league"`
	Rating      float64   `gorm:"column:rating;not null" json:"rating"`
	LogoURL     string    `gorm:"column:logo_url;type:text;not null" json:"logoUrl"`
	Players     []Player  `gorm:"foreignKey:TeamID;references:ID" json:"players"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}

// Player is a member of exactly one team roster. The id is unique across all
// rosters, so a player can never appear in two teams at once.
type Player struct {
	TeamID      string  `gorm:"primaryKey;column:team_id;type:varchar(36)" json:"-"`
	ID          string  `gorm:"primaryKey;column:id;type:varchar(36);uniqueIndex:idx_players_id" json:"id"`
	Name        string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Position    string  `gorm:"column:position;type:varchar(64);not null" json:"position"`
	Matches     int     `gorm:"column:matches;not null" json:"matches"`
	Goals       int     `gorm:"column:goals;not null" json:"goals"`
	Assists     int     `gorm:"column:assists;not null" json:"assists"`
	Rating      float64 `gorm:"column:rating;not null" json:"rating"`
	RosterOrder int     `gorm:"column:roster_order;not null" json:"-"`
}

// TableName specifies the table name for GORM.
func (Player) TableName() string {
	return "players"
}
