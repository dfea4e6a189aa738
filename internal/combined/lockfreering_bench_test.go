package combined_test

import (
	"sync/atomic"
	"testing"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/randomizedcoder/nbtimer/internal/loop"
	"github.com/randomizedcoder/nbtimer/internal/stepper"
	"github.com/randomizedcoder/nbtimer/internal/tick"
)

// ============================================================================
// Inbox comparison: N producers submitting commands to one control loop.
//
// The loop's inbox is a go-lock-free-ring ShardedRing (MPSC, one shard per
// producer). The baseline is a buffered channel drained with select/default,
// which is what a loop that must never park would otherwise use.
// ============================================================================

var sinkAny any

func benchCommand() loop.Command[rate] {
	return loop.Command[rate]{
		Axis:  "pan",
		Steps: []stepper.Step[rate]{{Interval: tick.Ticks[rate](100), Dir: stepper.Forward}},
	}
}

func benchmarkInboxChannel(b *testing.B, producers int) {
	ch := make(chan loop.Command[rate], 1024)
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			case v := <-ch:
				sinkAny = v
			default:
			}
		}
	}()

	cmd := benchCommand()
	b.SetParallelism(producers)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			ch <- cmd
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}

func benchmarkInboxShardedRing(b *testing.B, producers int) {
	r, err := ring.NewShardedRing(uint64(1024*producers), uint64(producers))
	if err != nil {
		b.Fatal(err)
	}
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			default:
				if v, ok := r.TryRead(); ok {
					sinkAny = v
				}
			}
		}
	}()

	cmd := benchCommand()
	var producerID atomic.Uint64
	b.SetParallelism(producers)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		pid := producerID.Add(1) - 1
		for pb.Next() {
			for !r.Write(pid, cmd) {
			}
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}

func BenchmarkInbox_Channel_1P(b *testing.B)     { benchmarkInboxChannel(b, 1) }
func BenchmarkInbox_ShardedRing_1P(b *testing.B) { benchmarkInboxShardedRing(b, 1) }
func BenchmarkInbox_Channel_4P(b *testing.B)     { benchmarkInboxChannel(b, 4) }
func BenchmarkInbox_ShardedRing_4P(b *testing.B) { benchmarkInboxShardedRing(b, 4) }
