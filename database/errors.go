package database

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document, including
	// lookups by an id that is not a valid ObjectID.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)
