// Package apperr classifies domain errors into the kinds the HTTP layer maps to status codes.
package apperr

import "github.com/cockroachdb/errors"

// Kind markers. Domain sentinels are marked with exactly one of them.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

var kinds = []error{ErrValidation, ErrNotFound, ErrConflict, ErrUnauthorized, ErrForbidden}

// Validation returns a new error of the validation kind.
func Validation(msg string) error { return errors.Mark(errors.New(msg), ErrValidation) }

// NotFound returns a new error of the not-found kind.
func NotFound(msg string) error { return errors.Mark(errors.New(msg), ErrNotFound) }

// Conflict returns a new error of the conflict kind.
func Conflict(msg string) error { return errors.Mark(errors.New(msg), ErrConflict) }

// Unauthorized returns a new error of the unauthorized kind.
func Unauthorized(msg string) error { return errors.Mark(errors.New(msg), ErrUnauthorized) }

// Forbidden returns a new error of the forbidden kind.
func Forbidden(msg string) error { return errors.Mark(errors.New(msg), ErrForbidden) }

// Validationf formats a validation error.
func Validationf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrValidation)
}

// KindOf returns the kind marker carried by err, or nil for unclassified errors.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
