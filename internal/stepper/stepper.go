// Package stepper turns planned step intervals into step pulses.
//
// An Axis owns one tick.Timer. For each planned Step it arms the timer with
// the step's interval, polls it once per control-loop iteration, and emits
// exactly one pulse when the interval has elapsed, then arms the next step
// straight away. Computing the intervals (kinematics, ramps) is left to
// whoever fills the plan.
package stepper

import (
	"fmt"

	"github.com/randomizedcoder/nbtimer/internal/tick"
)

// Direction is the sense of a single step.
type Direction int8

const (
	Forward Direction = 1  // Forward raises Position by one.
	Reverse Direction = -1 // Reverse lowers Position by one.
)

// Valid reports whether d is Forward or Reverse.
func (d Direction) Valid() bool {
	return d == Forward || d == Reverse
}

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("Direction(%d)", int8(d))
	}
}

// Step is one planned pulse: wait Interval, then step once in Dir.
type Step[F tick.Rate] struct {
	Interval tick.Duration[F]
	Dir      Direction
}

// Backend emits pulses to hardware (a GPIO pin, a PIO program, a simulator).
//
// Pulse is called from the control loop and must return quickly; any pulse
// width timing is the backend's concern.
type Backend interface {
	Pulse(dir Direction) error
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(dir Direction) error

// Pulse calls f.
func (f BackendFunc) Pulse(dir Direction) error {
	return f(dir)
}
