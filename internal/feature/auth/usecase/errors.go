// Package usecase implements the business logic for the auth feature.
package usecase

import "todo_backend/internal/shared/apperr"

var (
	// ErrMissingFields is returned when registration lacks username, email or password.
	ErrMissingFields = apperr.Validation("All fields are required")

	// ErrMissingCredentials is returned when login lacks username or password.
	ErrMissingCredentials = apperr.Validation("username and password are required")

	// ErrPasswordTooLong is returned when the password exceeds bcrypt's 72-byte input limit.
	ErrPasswordTooLong = apperr.Validation("Password must be at most 72 bytes")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = apperr.Conflict("User with this email already exists")

	// ErrUserNotFound is returned when a user cannot be found by email or username.
	ErrUserNotFound = apperr.NotFound("user not found")

	// ErrInvalidCredentials is returned for an unknown username and for a wrong password alike.
	ErrInvalidCredentials = apperr.Auth("Invalid username or password")
)
