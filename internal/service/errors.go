package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned when a login attempt fails.
	// Deliberately does not reveal whether the account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when a staff email is already registered
	ErrEmailTaken = errors.New("email already registered")

	// ErrAccountInactive is returned when an inactive staff account signs in
	ErrAccountInactive = errors.New("account is inactive")
)
