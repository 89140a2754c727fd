package model

import "github.com/clubdesk/matchday/internal/apperr"

var (
	// ErrMissingCredentials indicates an empty username or password.
	ErrMissingCredentials = apperr.Validation("username and password are required")
	// ErrUserExists indicates a taken username.
	ErrUserExists = apperr.Conflict("user already exists")
	// ErrInvalidCredentials is returned for unknown users and wrong passwords alike.
	ErrInvalidCredentials = apperr.Unauthorized("invalid credentials")
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = apperr.NotFound("user not found")
)
