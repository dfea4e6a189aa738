// Package cancel provides the shutdown signal a control loop polls.
//
// A control loop never parks on a channel, so cancellation is a flag it
// checks once per iteration alongside its timers:
//   - ContextCanceler: wraps a context.Context (signals, parent deadlines)
//   - AtomicCanceler: a single atomic.Bool, the cheapest check
package cancel

import "errors"

// ErrCanceled is returned by polling helpers that gave up because the
// Canceler reported Done.
var ErrCanceled = errors.New("cancel: canceled")

// Canceler provides cancellation signaling to a polling loop.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true if cancellation has been triggered. Never blocks.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}
