// Package model provides data transfer objects for statistics module.
package model

// StandingRow is one team's line in the league table.
type StandingRow struct {
	TeamID       string `json:"teamId"`
	TeamName     string `json:"teamName"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	GoalDiff     int    `json:"goalDiff"`
	Points       int    `json:"points"`
}

// MatchScore is the final score of a finished match.
type MatchScore struct {
	HomeTeamID string `gorm:"column:home_team_id"`
	AwayTeamID string `gorm:"column:away_team_id"`
	ScoreHome  int    `gorm:"column:score_home"`
	ScoreAway  int    `gorm:"column:score_away"`
}

// PlayerRow is a player flattened out of its team roster.
type PlayerRow struct {
	TeamID   string  `gorm:"column:team_id" json:"teamId"`
	TeamName string  `gorm:"column:team_name" json:"teamName"`
	PlayerID string  `gorm:"column:player_id" json:"playerId"`
	Name     string  `gorm:"column:name" json:"name"`
	Position string  `gorm:"column:position" json:"position"`
	Matches  int     `gorm:"column:matches" json:"matches"`
	Goals    int     `gorm:"column:goals" json:"goals"`
	Assists  int     `gorm:"column:assists" json:"assists"`
	Rating   float64 `gorm:"column:rating" json:"rating"`
}

// TeamSummary is a compact team entry of the top-teams table.
type TeamSummary struct {
	ID      string  `gorm:"column:id" json:"id"`
	Name    string  `gorm:"column:name" json:"name"`
	Rating  float64 `gorm:"column:rating" json:"rating"`
	Country string  `gorm:"column:country" json:"country"`
	League  string  `gorm:"column:league" json:"league"`
	LogoURL string  `gorm:"column:logo_url" json:"logoUrl"`
}

// MovedResponse answers requests to endpoints that moved.
type MovedResponse struct {
	Error string `json:"error"`
	Use   string `json:"use"`
}
