package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInternalServer = errors.New("internal server error")
)

// Workflow errors
var (
	ErrInvalidTransition = errors.New("transition not allowed from current status")
	ErrForbidden         = errors.New("actor lacks required role")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("entity was modified concurrently")
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)
