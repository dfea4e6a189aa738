package tick

import "errors"

var (
	// ErrAlreadyCanceled is returned by Start, Wait and Cancel once a timer
	// has been canceled. Cancellation is permanent.
	ErrAlreadyCanceled = errors.New("tick: timer was already canceled")

	// ErrStillArmed is returned by Start while the previous duration has
	// not yet expired. A timer holds one pending wait at a time.
	ErrStillArmed = errors.New("tick: start called but duration has not yet expired")
)
