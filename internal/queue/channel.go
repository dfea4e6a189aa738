package queue

// ChannelQueue is a Queue over a buffered channel.
//
// Push and Pop use select with default, so neither ever parks the
// control loop. Unlike RingBuffer it tolerates concurrent producers.
type ChannelQueue[T any] struct {
	ch chan T
}

// NewChannel creates a ChannelQueue holding up to size items.
// A size below 1 is raised to 1.
func NewChannel[T any](size int) *ChannelQueue[T] {
	if size < 1 {
		size = 1
	}
	return &ChannelQueue[T]{
		ch: make(chan T, size),
	}
}

// Push adds v, or returns false if the channel buffer is full.
func (q *ChannelQueue[T]) Push(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// Pop removes the oldest item, or returns false if none is buffered.
func (q *ChannelQueue[T]) Pop() (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Len returns the number of buffered items.
func (q *ChannelQueue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the channel capacity.
func (q *ChannelQueue[T]) Cap() int {
	return cap(q.ch)
}
