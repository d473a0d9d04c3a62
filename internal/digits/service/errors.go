package service

import (
	"errors"
)

var (
	ErrValidation       = errors.New("validation_error")
	ErrMissingToken     = errors.New("missing token")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
	ErrNoChallenge      = errors.New("no challenge found, request a reveal first")
	ErrChallengeExpired = errors.New("challenge expired, please request reveal again")
	ErrInvalidPosition  = errors.New("invalid challenge positions")
	ErrNotFound         = errors.New("entry not found")
	ErrUnauthorized     = errors.New("authentication required")

	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError reports malformed user input on a single field. It matches
// ErrValidation through errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
