// Package clock provides monotonic nanosecond time sources for control loops.
//
// A Clock is the only time source the tick package reads. Implementations:
//   - Runtime: the Go runtime's monotonic clock (runtime.nanotime)
//   - TSC: the CPU timestamp counter scaled to nanoseconds (amd64 only)
//   - Manual: a clock advanced explicitly, for deterministic tests
//
// All implementations are safe for concurrent use and never block.
package clock

import "time"

// Clock returns nanoseconds since an arbitrary fixed point.
//
// Readings never decrease for the lifetime of the process. No wraparound
// handling is done; 64 bits of nanoseconds outlast any deployment.
type Clock interface {
	Nanos() uint64
}

// Func adapts a plain function to the Clock interface.
type Func func() uint64

// Nanos calls f.
func (f Func) Nanos() uint64 {
	return f()
}

// Since returns the time elapsed on c since the reading start.
// A start in the future yields zero.
func Since(c Clock, start uint64) time.Duration {
	now := c.Nanos()
	if now <= start {
		return 0
	}
	return time.Duration(now - start)
}
