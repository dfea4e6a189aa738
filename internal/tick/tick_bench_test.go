package tick_test

import (
	"testing"
	"time"

	"github.com/randomizedcoder/nbtimer/internal/clock"
	"github.com/randomizedcoder/nbtimer/internal/tick"
)

// Long duration so Wait() stays pending (we're measuring poll overhead)
const benchInterval = time.Hour

// Sink variables to prevent compiler from eliminating benchmark loops
var (
	sinkPending bool
	sinkTick    bool
	sinkTicks   uint64
)

func BenchmarkTimer_Wait_Runtime(b *testing.B) {
	t := tick.New[tick.MHz1](clock.Runtime, tick.Config{})
	_ = t.Start(tick.FromStd[tick.MHz1](benchInterval))
	b.ReportAllocs()
	b.ResetTimer()

	var result bool
	for i := 0; i < b.N; i++ {
		result = t.Wait().IsPending()
	}
	sinkPending = result
}

func BenchmarkTimer_Wait_Manual(b *testing.B) {
	t := tick.New[tick.MHz1](clock.NewManual(0), tick.Config{})
	_ = t.Start(tick.FromStd[tick.MHz1](benchInterval))
	b.ReportAllocs()
	b.ResetTimer()

	var result bool
	for i := 0; i < b.N; i++ {
		result = t.Wait().IsPending()
	}
	sinkPending = result
}

func BenchmarkTimer_Now(b *testing.B) {
	t := tick.New[tick.MHz1](clock.Runtime, tick.Config{})
	b.ReportAllocs()
	b.ResetTimer()

	var ticks uint64
	for i := 0; i < b.N; i++ {
		ticks = t.Now().Ticks()
	}
	sinkTicks = ticks
}

// Full arm-cycle: every Wait is ready, every Start succeeds.
func BenchmarkTimer_StartWait(b *testing.B) {
	t := tick.New[tick.MHz1](clock.Runtime, tick.Config{})
	zero := tick.Ticks[tick.MHz1](0)
	b.ReportAllocs()
	b.ResetTimer()

	var result bool
	for i := 0; i < b.N; i++ {
		_ = t.Start(zero)
		result = t.Wait().IsPending()
	}
	sinkPending = result
}

func BenchmarkPeriodic_Tick_Interface(b *testing.B) {
	var t tick.Ticker = tick.NewPeriodic(clock.Runtime, tick.FromStd[tick.MHz1](benchInterval), tick.Config{})
	defer t.Stop()
	b.ReportAllocs()
	b.ResetTimer()

	var result bool
	for i := 0; i < b.N; i++ {
		result = t.Tick()
	}
	sinkTick = result
}
