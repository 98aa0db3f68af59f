package model

import "errors"

// Validation errors returned by the store before touching the database.
var (
	ErrNameRequired     = errors.New("name required")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidPrice     = errors.New("unit price must not be negative")
	ErrInvalidAmount    = errors.New("final amount must be positive")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrListCompleted    = errors.New("list is completed")
)
