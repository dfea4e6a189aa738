package clock

import (
	"sync/atomic"
	"time"
)

// Manual is a Clock that only moves when told to.
//
// Tests drive timers through exact deadlines with it. Readings never go
// backward: Set with an earlier value and Advance with a negative duration
// are ignored.
type Manual struct {
	now atomic.Uint64
}

// NewManual creates a Manual clock reading start.
func NewManual(start uint64) *Manual {
	m := &Manual{}
	m.now.Store(start)
	return m
}

// Nanos returns the current reading.
func (m *Manual) Nanos() uint64 {
	return m.now.Load()
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.now.Add(uint64(d))
}

// Set moves the clock to ns if that is not earlier than the current reading.
func (m *Manual) Set(ns uint64) {
	for {
		cur := m.now.Load()
		if ns <= cur {
			return
		}
		if m.now.CompareAndSwap(cur, ns) {
			return
		}
	}
}
