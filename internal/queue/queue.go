// Package queue provides the bounded, non-blocking buffers that hold an
// axis's planned steps between the control loop's inbox and its timer.
//
// Two implementations of Queue:
//   - RingBuffer: lock-free power-of-two ring
//   - ChannelQueue: buffered channel with select/default
//
// # RingBuffer Safety (IMPORTANT)
//
// RingBuffer is a Single-Producer Single-Consumer (SPSC) queue.
// It is NOT safe for multiple goroutines to call Push() or Pop() concurrently.
// In this module one control-loop goroutine is both producer and consumer.
//
// The implementation includes runtime guards that panic on misuse.
package queue

// Queue is a bounded single-producer single-consumer FIFO.
//
// Implementations never block: Push returns false if full,
// Pop returns false if empty.
type Queue[T any] interface {
	// Push adds an item to the queue.
	// Returns false if the queue is full.
	Push(T) bool

	// Pop removes and returns the oldest item.
	// Returns false if the queue is empty.
	Pop() (T, bool)

	// Len returns the number of queued items.
	Len() int

	// Cap returns the maximum number of queued items.
	Cap() int
}

// Kind names a Queue implementation, for configuration.
type Kind string

const (
	KindRing    Kind = "ring"    // RingBuffer
	KindChannel Kind = "channel" // ChannelQueue
)

// New creates a Queue of the given kind and size. Unknown kinds return nil
// and false.
func New[T any](kind Kind, size int) (Queue[T], bool) {
	switch kind {
	case KindRing:
		return NewRingBuffer[T](size), true
	case KindChannel:
		return NewChannel[T](size), true
	}
	return nil, false
}
