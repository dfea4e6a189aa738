package tick

import "math"

// Instant is a point on a timer's tick axis, counted from the timer's
// creation. Instants from different timers are not comparable.
type Instant[F Rate] struct {
	ticks uint64
}

// Ticks returns the tick count since the timer's epoch.
func (i Instant[F]) Ticks() uint64 { return i.ticks }

// Sub returns the Duration from earlier to i, or zero if earlier is later.
func (i Instant[F]) Sub(earlier Instant[F]) Duration[F] {
	if earlier.ticks >= i.ticks {
		return Duration[F]{}
	}
	return Duration[F]{ticks: i.ticks - earlier.ticks}
}

// Add returns i+d, saturating.
func (i Instant[F]) Add(d Duration[F]) Instant[F] {
	sum := i.ticks + d.ticks
	if sum < i.ticks {
		sum = math.MaxUint64
	}
	return Instant[F]{ticks: sum}
}

// Before reports whether i is earlier than o.
func (i Instant[F]) Before(o Instant[F]) bool { return i.ticks < o.ticks }

// After reports whether i is later than o.
func (i Instant[F]) After(o Instant[F]) bool { return i.ticks > o.ticks }
