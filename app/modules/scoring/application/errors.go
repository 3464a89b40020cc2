package scoringservice

import "errors"

// Precondition failures abort a scoring run before any writes. Callers must
// treat them as non-retriable until the event state is fixed; anything else
// is a transient failure worth retrying.
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventNotCompleted = errors.New("event is not completed")
	ErrNoResults         = errors.New("no results found for event")
)

// IsPrecondition reports whether err is one of the non-retriable precondition
// failures.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrEventNotCompleted) ||
		errors.Is(err, ErrNoResults)
}
