package repo

import "errors"

// Sentinel errors returned by the record access layer. Handlers map these to
// HTTP statuses; anything else is treated as an internal error.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("duplicate key")
)
