package clock

import (
	_ "unsafe" // Required for go:linkname
)

// nanotime returns the current monotonic time in nanoseconds.
// This is faster than time.Now() because it returns a single int64
// and avoids constructing a time.Time struct.
//
// Note: This uses go:linkname to access an internal runtime function.
// It may break in future Go versions, though it has been stable.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// Runtime reads the Go runtime's monotonic clock.
//
// This is the default clock for timers. A call costs a few nanoseconds and
// does not allocate, so it is cheap enough to read on every loop iteration.
var Runtime Clock = Func(runtimeNanos)

func runtimeNanos() uint64 {
	return uint64(nanotime())
}
