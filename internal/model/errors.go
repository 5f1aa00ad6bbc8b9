package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches the query.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken is returned by stores when an insert violates the
	// unique constraint on the email column.
	ErrEmailTaken = errors.New("email already taken")
)
