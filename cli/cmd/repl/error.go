package repl

import "errors"

var (
	// ErrOutOfBounds is returned for a history index outside the loaded entries.
	ErrOutOfBounds = errors.New("history index out of range")
	// ErrEditDeclined ends the session when the user will not fix an edited
	// source that fails to resolve.
	ErrEditDeclined = errors.New("edit declined")
)
