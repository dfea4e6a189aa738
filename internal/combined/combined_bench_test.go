package combined_test

import (
	"context"
	"testing"
	"time"

	"github.com/randomizedcoder/nbtimer/internal/cancel"
	"github.com/randomizedcoder/nbtimer/internal/clock"
	"github.com/randomizedcoder/nbtimer/internal/loop"
	"github.com/randomizedcoder/nbtimer/internal/queue"
	"github.com/randomizedcoder/nbtimer/internal/stepper"
	"github.com/randomizedcoder/nbtimer/internal/tick"
)

type rate = tick.MHz1

// Sink variables
var (
	sinkBool  bool
	sinkSteps uint64
)

// Long so timers stay pending and we measure polling overhead.
const benchInterval = time.Hour

func pendingTimer() *tick.Timer[rate] {
	t := tick.New[rate](clock.Runtime, tick.Config{})
	_ = t.Start(tick.FromStd[rate](benchInterval))
	return t
}

// BenchmarkCombined_CancelWait_Context checks a context-backed canceler
// and polls a timer, as a loop shut down by signal.NotifyContext would.
func BenchmarkCombined_CancelWait_Context(b *testing.B) {
	c := cancel.NewContext(context.Background())
	t := pendingTimer()
	b.ReportAllocs()
	b.ResetTimer()

	var cancelled, pending bool
	for i := 0; i < b.N; i++ {
		cancelled = c.Done()
		pending = t.Wait().IsPending()
	}
	sinkBool = cancelled || pending
}

// BenchmarkCombined_CancelWait_Atomic does the same with an atomic flag.
func BenchmarkCombined_CancelWait_Atomic(b *testing.B) {
	c := cancel.NewAtomic()
	t := pendingTimer()
	b.ReportAllocs()
	b.ResetTimer()

	var cancelled, pending bool
	for i := 0; i < b.N; i++ {
		cancelled = c.Done()
		pending = t.Wait().IsPending()
	}
	sinkBool = cancelled || pending
}

func benchmarkFullIteration(b *testing.B, kind queue.Kind) {
	c := cancel.NewAtomic()
	t := pendingTimer()
	plan, _ := queue.New[stepper.Step[rate]](kind, 1024)

	for i := 0; i < 1024; i++ {
		plan.Push(stepper.Step[rate]{Interval: tick.Ticks[rate](uint64(i)), Dir: stepper.Forward})
	}

	b.ReportAllocs()
	b.ResetTimer()

	var s stepper.Step[rate]
	var ok, cancelled, pending bool
	for i := 0; i < b.N; i++ {
		cancelled = c.Done()
		pending = t.Wait().IsPending()
		s, ok = plan.Pop()
		plan.Push(s) // Recycle
	}
	sinkSteps = s.Interval.Ticks()
	sinkBool = ok || cancelled || pending
}

func BenchmarkCombined_FullIteration_Channel(b *testing.B) {
	benchmarkFullIteration(b, queue.KindChannel)
}

func BenchmarkCombined_FullIteration_Ring(b *testing.B) {
	benchmarkFullIteration(b, queue.KindRing)
}

// BenchmarkAxis_Poll_Pending measures an axis waiting on a long step.
func BenchmarkAxis_Poll_Pending(b *testing.B) {
	a, err := stepper.NewAxis(stepper.Config[rate]{
		Name:    "bench",
		Plan:    queue.NewRingBuffer[stepper.Step[rate]](4),
		Backend: stepper.BackendFunc(func(stepper.Direction) error { return nil }),
	})
	if err != nil {
		b.Fatal(err)
	}
	a.Enqueue(stepper.Step[rate]{Interval: tick.FromStd[rate](benchInterval), Dir: stepper.Forward})
	a.Poll()

	b.ReportAllocs()
	b.ResetTimer()

	var pending bool
	for i := 0; i < b.N; i++ {
		pending = a.Poll().IsPending()
	}
	sinkBool = pending
}

// BenchmarkRunner_RunOnce_Idle measures a loop iteration with two waiting
// axes and an empty inbox.
func BenchmarkRunner_RunOnce_Idle(b *testing.B) {
	var axes []*stepper.Axis[rate]
	for _, name := range []string{"pan", "tilt"} {
		a, err := stepper.NewAxis(stepper.Config[rate]{
			Name:    name,
			Plan:    queue.NewRingBuffer[stepper.Step[rate]](4),
			Backend: stepper.BackendFunc(func(stepper.Direction) error { return nil }),
		})
		if err != nil {
			b.Fatal(err)
		}
		a.Enqueue(stepper.Step[rate]{Interval: tick.FromStd[rate](benchInterval), Dir: stepper.Forward})
		axes = append(axes, a)
	}

	r, err := loop.New(loop.Config{InboxCapacity: 1024, Producers: 1}, cancel.NewAtomic(), axes...)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := r.RunOnce(); err != nil {
			b.Fatal(err)
		}
	}
}
