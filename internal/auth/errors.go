package auth

import "errors"

var (
	// ErrEmailTaken is returned when registering an email that already has a record
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound is returned when no credential record matches an email
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when email+password do not match a record
	ErrInvalidCredentials = errors.New("invalid email or password")
)
