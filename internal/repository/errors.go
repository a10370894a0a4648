package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches; malformed ids map here too.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("record already exists")
)
