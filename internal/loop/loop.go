// Package loop runs stepper axes from a single cooperative control loop.
//
// Each iteration of the loop:
//   - checks the Canceler
//   - drains step commands from a lock-free multi-producer inbox
//   - polls every axis once
//   - reports status when the status ticker fires
//
// Nothing in an iteration blocks. All axes and their timers are owned by
// the goroutine calling Run or RunOnce; other goroutines interact with the
// loop only through Submit and the Canceler.
package loop

import (
	"errors"
	"time"

	"github.com/randomizedcoder/nbtimer/internal/stepper"
	"github.com/randomizedcoder/nbtimer/internal/tick"
)

var (
	// ErrUnknownAxis is returned when a command names an axis the Runner
	// does not drive.
	ErrUnknownAxis = errors.New("loop: unknown axis")

	// ErrInvalidStep is returned for a step with an invalid direction.
	ErrInvalidStep = errors.New("loop: invalid step")
)

// Command appends steps to one axis's plan.
type Command[F tick.Rate] struct {
	Axis  string
	Steps []stepper.Step[F]
}

// maxDrainPerIteration bounds the inbox work done in a single iteration so
// a burst of commands cannot delay axis polling.
const maxDrainPerIteration = 64

// DefaultStatusInterval is used by callers that want periodic status logs
// without choosing an interval.
const DefaultStatusInterval = 5 * time.Second
