// Package nb models the outcome of a non-blocking poll.
//
// Every poll returns exactly one of three outcomes:
//   - Ready: the operation completed, with a value
//   - Pending: not ready yet; the caller must poll again later
//   - Failed: the operation failed with an error
//
// Pending is not an error. Code that polls must handle it as its own state,
// not compare it against an error value.
package nb

import (
	"errors"
	"fmt"
)

// State is the outcome of a single poll.
type State uint8

const (
	// Pending means the operation would have blocked.
	Pending State = iota
	// Ready means the operation completed.
	Ready
	// Failed means the operation failed; Err holds the cause.
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

var errNilFailure = errors.New("nb: failed with nil error")

// Result is the outcome of a poll producing a T.
//
// The zero Result is Pending.
type Result[T any] struct {
	state State
	value T
	err   error
}

// Done returns a Ready result carrying v.
func Done[T any](v T) Result[T] {
	return Result[T]{state: Ready, value: v}
}

// WouldBlock returns a Pending result.
func WouldBlock[T any]() Result[T] {
	return Result[T]{}
}

// Fail returns a Failed result. A nil err is replaced with a non-nil error
// so a Failed result always carries a cause.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errNilFailure
	}
	return Result[T]{state: Failed, err: err}
}

// State returns which of the three outcomes r holds.
func (r Result[T]) State() State { return r.state }

// IsReady reports whether the operation completed.
func (r Result[T]) IsReady() bool { return r.state == Ready }

// IsPending reports whether the caller must poll again.
func (r Result[T]) IsPending() bool { return r.state == Pending }

// Err returns the failure cause, or nil unless r is Failed.
func (r Result[T]) Err() error { return r.err }

// Value returns the completed value and true if r is Ready.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.state == Ready
}

func (r Result[T]) String() string {
	switch r.state {
	case Ready:
		return fmt.Sprintf("ready(%v)", r.value)
	case Failed:
		return fmt.Sprintf("failed(%v)", r.err)
	default:
		return r.state.String()
	}
}
