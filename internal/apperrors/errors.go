// Package apperrors defines the sentinel errors shared across the service.
// The HTTP layer maps each of these to a status code; anything else is a 500.
package apperrors

import "errors"

var (
	// ErrEmailExists is returned when a registration targets an email that is
	// already taken, whether caught by the pre-check or by the database
	// uniqueness constraint.
	ErrEmailExists = errors.New("user already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong password,
	// so a login response never reveals whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInactiveAccount is returned when credentials are valid but the
	// account has been deactivated.
	ErrInactiveAccount = errors.New("user is inactive")

	// ErrInvalidToken covers expired, tampered and malformed tokens alike.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNotFound marks an empty lookup result. It is a soft outcome, not a
	// failure path.
	ErrNotFound = errors.New("user not found")
)
