// Package model provides domain models and DTOs for user module.
package model

import "strings"

// Credentials is the body of register and login requests.
type Credentials struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// Normalize trims the username. Passwords are used as given.
func (c *Credentials) Normalize() {
	c.Username = strings.TrimSpace(c.Username)
}

// PublicUser is a user as exposed over HTTP.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// MeResponse is the body of GET /api/auth/me. User is null for anonymous callers.
type MeResponse struct {
	User *PublicUser `json:"user"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Message string      `json:"message"`
	User    *PublicUser `json:"user"`
	Role    string      `json:"role"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
