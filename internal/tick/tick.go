// Package tick provides a non-blocking timer for cooperative control loops.
//
// A Timer counts integer ticks at a fixed rate F, chosen at compile time
// through a type parameter:
//
//	t := tick.New[tick.KHz1](clock.Runtime, tick.Config{Name: "pan"})
//	_ = t.Start(tick.Millis[tick.KHz1](50))
//	for {
//		switch r := t.Wait(); r.State() {
//		case nb.Ready:
//			pulse()
//			_ = t.Start(next)
//		case nb.Failed:
//			return r.Err()
//		}
//		// other loop work
//	}
//
// Wait never sleeps or parks the goroutine. A Pending result is the loop's
// cue to move on and poll again on its next iteration.
//
// A Timer is owned by exactly one loop and is not safe for concurrent use.
// Coordinating several timers (e.g. two axes) is the caller's job.
package tick

// Ticker signals when a time interval has elapsed.
//
// Implementations are polled from a hot loop and never block.
type Ticker interface {
	// Tick returns true once per elapsed interval.
	// This is a non-blocking check.
	Tick() bool

	// Stop releases the ticker. After Stop, Tick always returns false.
	Stop()
}
