//go:build amd64

package clock

import (
	"sync/atomic"
	"time"
)

// rdtsc reads the CPU's Time Stamp Counter.
// Implemented in tsc_amd64.s
func rdtsc() uint64

// CalibrateTSC measures CPU cycles per nanosecond.
//
// This performs a ~10ms calibration by comparing TSC ticks against
// the runtime clock. The result is approximate and can vary with:
//   - CPU frequency scaling (Turbo Boost, SpeedStep)
//   - Power management states
//   - Thermal throttling
//
// For best results, run on a warmed-up CPU with frequency governor
// set to "performance".
func CalibrateTSC() (float64, error) {
	// Warm up the TSC path
	rdtsc()
	rdtsc()

	start := rdtsc()
	t1 := nanotime()
	time.Sleep(10 * time.Millisecond)
	end := rdtsc()
	t2 := nanotime()

	cycles := float64(end - start)
	nanos := float64(t2 - t1)

	return cycles / nanos, nil
}

// TSC is a Clock backed by the CPU's Time Stamp Counter.
//
// Reading it bypasses the OS and the runtime entirely. Cycles are converted
// to nanoseconds with a fixed ratio, so the scale drifts if the CPU lacks an
// invariant TSC. Readings are clamped so they never go backward, even when
// goroutines migrate between cores with slightly skewed counters.
type TSC struct {
	cyclesPerNs float64
	base        uint64
	last        atomic.Uint64
}

// NewTSC creates a TSC clock with an explicit cycles-per-nanosecond ratio
// (e.g. 3.0 for a 3GHz invariant TSC). The clock reads zero at creation.
func NewTSC(cyclesPerNs float64) (*TSC, error) {
	if cyclesPerNs <= 0 {
		return nil, ErrTSCRatio
	}
	return &TSC{
		cyclesPerNs: cyclesPerNs,
		base:        rdtsc(),
	}, nil
}

// NewTSCCalibrated creates a TSC clock with automatic calibration.
//
// This blocks for ~10ms while calibrating. Calibrate once at startup,
// never from inside a control loop.
func NewTSCCalibrated() (*TSC, error) {
	ratio, err := CalibrateTSC()
	if err != nil {
		return nil, err
	}
	return NewTSC(ratio)
}

// Nanos returns nanoseconds since the clock was created.
func (t *TSC) Nanos() uint64 {
	var cycles uint64
	if now := rdtsc(); now > t.base {
		cycles = now - t.base
	}
	ns := uint64(float64(cycles) / t.cyclesPerNs)

	for {
		last := t.last.Load()
		if ns <= last {
			return last
		}
		if t.last.CompareAndSwap(last, ns) {
			return ns
		}
	}
}

// CyclesPerNs returns the cycles-per-nanosecond ratio in use.
func (t *TSC) CyclesPerNs() float64 {
	return t.cyclesPerNs
}
