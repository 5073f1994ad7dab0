package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrIdentityExists = errors.New("identity already registered")

	// Grid errors
	ErrCellNotFound = errors.New("cell not found")

	// Config errors
	ErrConfigNotFound      = errors.New("config not found")
	ErrInvalidTickInterval = errors.New("tick interval must be positive")
)
