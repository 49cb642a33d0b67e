package database

import "errors"

var (
	// ErrNotFound is returned when a lookup by id or key misses.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)
