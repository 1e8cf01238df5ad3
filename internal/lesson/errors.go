package lesson

import "errors"

var (
	// ErrSessionNotFound is returned when no session has the given id.
	ErrSessionNotFound = errors.New("lesson session not found")

	// ErrStaleResult is returned when a background result no longer matches
	// the session's current lesson.
	ErrStaleResult = errors.New("result belongs to a superseded lesson")
)
