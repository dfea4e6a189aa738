package stepper

import (
	"time"

	"github.com/randomizedcoder/nbtimer/internal/clock"
)

// Pulse is one recorded step.
type Pulse struct {
	At  uint64 // clock reading, nanoseconds
	Dir Direction
}

// Recorder is a Backend that keeps every pulse in memory, stamped with the
// time it was emitted. It stands in for hardware in simulations and tests.
type Recorder struct {
	clk    clock.Clock
	pulses []Pulse
}

// NewRecorder creates a Recorder stamping pulses from clk, with room for
// capacity pulses before growing.
func NewRecorder(clk clock.Clock, capacity int) *Recorder {
	if clk == nil {
		clk = clock.Runtime
	}
	return &Recorder{
		clk:    clk,
		pulses: make([]Pulse, 0, capacity),
	}
}

// Pulse records a step. It never fails.
func (r *Recorder) Pulse(dir Direction) error {
	r.pulses = append(r.pulses, Pulse{At: r.clk.Nanos(), Dir: dir})
	return nil
}

// Pulses returns the recorded pulses in order. The slice is shared.
func (r *Recorder) Pulses() []Pulse {
	return r.pulses
}

// IntervalStats summarizes the gaps between consecutive pulses.
type IntervalStats struct {
	Count int
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
}

// Intervals summarizes the time between consecutive recorded pulses.
// Fewer than two pulses give zero stats.
func (r *Recorder) Intervals() IntervalStats {
	var s IntervalStats
	if len(r.pulses) < 2 {
		return s
	}

	var total time.Duration
	for i := 1; i < len(r.pulses); i++ {
		gap := time.Duration(r.pulses[i].At - r.pulses[i-1].At)
		if s.Count == 0 || gap < s.Min {
			s.Min = gap
		}
		if gap > s.Max {
			s.Max = gap
		}
		total += gap
		s.Count++
	}
	s.Mean = total / time.Duration(s.Count)
	return s
}
