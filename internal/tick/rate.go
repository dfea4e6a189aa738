package tick

import "fmt"

// Rate fixes a timer's tick frequency at compile time.
//
// Implementations are zero-size types whose Hz method returns a constant:
//
//	type KHz20 struct{}
//
//	func (KHz20) Hz() uint32 { return 20_000 }
type Rate interface {
	Hz() uint32
}

const (
	nanosPerSecond = 1_000_000_000

	// MaxHz is the highest supported rate: one tick per nanosecond.
	MaxHz = nanosPerSecond
)

// Hz1 ticks once per second.
type Hz1 struct{}

// Hz returns 1.
func (Hz1) Hz() uint32 { return 1 }

// Hz100 ticks every 10 milliseconds.
type Hz100 struct{}

// Hz returns 100.
func (Hz100) Hz() uint32 { return 100 }

// KHz1 ticks every millisecond.
type KHz1 struct{}

// Hz returns 1000.
func (KHz1) Hz() uint32 { return 1_000 }

// KHz10 ticks every 100 microseconds.
type KHz10 struct{}

// Hz returns 10000.
func (KHz10) Hz() uint32 { return 10_000 }

// KHz100 ticks every 10 microseconds.
type KHz100 struct{}

// Hz returns 100000.
func (KHz100) Hz() uint32 { return 100_000 }

// MHz1 ticks every microsecond.
type MHz1 struct{}

// Hz returns 1000000.
func (MHz1) Hz() uint32 { return 1_000_000 }

// hzOf returns F's frequency. A zero rate is a programming error.
func hzOf[F Rate]() uint64 {
	var f F
	hz := uint64(f.Hz())
	if hz == 0 {
		panic(fmt.Sprintf("tick: rate %T reports 0 Hz", f))
	}
	return hz
}
