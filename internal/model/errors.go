package model

import "errors"

var (
	// Validation errors
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidPriority = errors.New("priority must be 'low', 'medium', or 'high'")

	// Lookup errors
	ErrNotFound    = errors.New("item not found")
	ErrDuplicateID = errors.New("duplicate item id")
)
