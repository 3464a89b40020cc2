package scoringdb

import "errors"

var (
	// ErrEventNotFound is returned when the requested event does not exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrScoreNotFound is returned when no score exists for a pick.
	ErrScoreNotFound = errors.New("score not found")
)
