package nb

import "github.com/randomizedcoder/nbtimer/internal/cancel"

// Block polls until the result is Ready or Failed.
//
// Block spins; it never sleeps or parks, so it only belongs where burning a
// core is acceptable (tests, calibration, short one-shot delays). c is
// checked before every poll and may be nil. When c reports Done, Block
// returns cancel.ErrCanceled.
func Block[T any](c cancel.Canceler, poll func() Result[T]) (T, error) {
	for {
		if c != nil && c.Done() {
			var zero T
			return zero, cancel.ErrCanceled
		}

		r := poll()
		switch r.state {
		case Ready:
			return r.value, nil
		case Failed:
			var zero T
			return zero, r.err
		}
	}
}
