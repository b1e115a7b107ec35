package model

import "errors"

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level errors
var (
	// Single message for unknown email and wrong password so the
	// response never reveals which field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrForbidden = errors.New("forbidden: insufficient permissions")
)
