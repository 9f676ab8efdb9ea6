package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrMissingField = errors.New("all fields are required")
	ErrUserExists   = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountLocked      = errors.New("account temporarily locked")
)
