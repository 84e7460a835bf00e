package repository

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when the database rejects a user insert
	// because the email is already registered. The database constraint is
	// the authoritative duplicate check; callers must not assume an earlier
	// lookup still holds.
	ErrDuplicateEmail = errors.New("email already exists")
)
