// Package common defines shared constants and sentinel errors used across
// the server, the client and their tests. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("email already registered")

	// Validation errors. Messages are wrapped around ErrValidation.
	ErrValidation = errors.New("validation failed")

	// Auth errors, in the order the session layer checks them.
	ErrMissingCredential     = errors.New("missing credential")
	ErrInvalidCredential     = errors.New("invalid authentication credentials")
	ErrInactiveAccount       = errors.New("inactive user")
	ErrInsufficientPrivilege = errors.New("superuser privileges required")

	// Credential errors.
	ErrMalformedCredential = errors.New("malformed credential record")
	ErrInvalidLogin        = errors.New("incorrect email or password")

	ErrInternal = errors.New("internal error")
)
