// Package model provides domain models and DTOs for team module.
package model

import "strings"

// CreateTeamRequest is the body of POST /api/teams.
type CreateTeamRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Country     string   `json:"country" validate:"max=255"`
	FoundedYear *int     `json:"foundedYear" validate:"omitempty,min=1800,max=2100"`
	Coach       string   `json:"coach" validate:"max=255"`
	Stadium     string   `json:"stadium" validate:"max=255"`
	League      string   `json:"league" validate:"max=255"`
	Rating      *float64 `json:"rating" validate:"omitempty,min=0,max=100"`
	LogoURL     string   `json:"logoUrl"`
}

// Normalize trims every text field.
func (r *CreateTeamRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Country = strings.TrimSpace(r.Country)
	r.Coach = strings.TrimSpace(r.Coach)
	r.Stadium = strings.TrimSpace(r.Stadium)
	r.League = strings.TrimSpace(r.League)
	r.LogoURL = strings.TrimSpace(r.LogoURL)
}

// UpdateTeamRequest is the body of PUT /api/teams/:id. Nil fields are left unchanged.
type UpdateTeamRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Country     *string  `json:"country" validate:"omitempty,max=255"`
	FoundedYear *int     `json:"foundedYear" validate:"omitempty,min=1800,max=2100"`
	Coach       *string  `json:"coach" validate:"omitempty,max=255"`
	Stadium     *string  `json:"stadium" validate:"omitempty,max=255"`
	League      *string  `json:"league" validate:"omitempty,max=255"`
	Rating      *float64 `json:"rating" validate:"omitempty,min=0,max=100"`
	LogoURL     *string  `json:"logoUrl"`
}

// Updates returns the column assignments of the request after trimming.
func (r *UpdateTeamRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	setText := func(column string, value *string) {
		if value != nil {
			trimmed := strings.TrimSpace(*value)
			*value = trimmed
			updates[column] = trimmed
		}
	}
	setText("name", r.Name)
	setText("country", r.Country)
	setText("coach", r.Coach)
	setText("stadium", r.Stadium)
	setText("league", r.League)
	setText("logo_url", r.LogoURL)
	if r.FoundedYear != nil {
		updates["founded_year"] = *r.FoundedYear
	}
	if r.Rating != nil {
		updates["rating"] = *r.Rating
	}
	return updates
}

// DeleteTeamResponse confirms a deletion.
type DeleteTeamResponse struct {
	Message string `json:"message"`
}
