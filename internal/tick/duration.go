package tick

import (
	"fmt"
	"math"
	"time"
)

// Duration is a whole number of ticks at rate F.
//
// Constructors from wall-clock units round up, so waiting for a Duration
// never takes less time than was asked for.
type Duration[F Rate] struct {
	ticks uint64
}

// Ticks returns a Duration of n ticks.
func Ticks[F Rate](n uint64) Duration[F] {
	return Duration[F]{ticks: n}
}

// Micros returns the shortest Duration covering us microseconds.
func Micros[F Rate](us uint64) Duration[F] {
	return Duration[F]{ticks: mulDivCeil(us, hzOf[F](), 1_000_000)}
}

// Millis returns the shortest Duration covering ms milliseconds.
func Millis[F Rate](ms uint64) Duration[F] {
	return Duration[F]{ticks: mulDivCeil(ms, hzOf[F](), 1_000)}
}

// Secs returns a Duration of s seconds.
func Secs[F Rate](s uint64) Duration[F] {
	return Duration[F]{ticks: mulDiv(s, hzOf[F](), 1)}
}

// FromStd returns the shortest Duration covering d. Negative d is zero.
func FromStd[F Rate](d time.Duration) Duration[F] {
	if d <= 0 {
		return Duration[F]{}
	}
	return Duration[F]{ticks: mulDivCeil(uint64(d), hzOf[F](), nanosPerSecond)}
}

// Ticks returns the tick count.
func (d Duration[F]) Ticks() uint64 { return d.ticks }

// IsZero reports whether d is zero ticks.
func (d Duration[F]) IsZero() bool { return d.ticks == 0 }

// Nanos converts d to nanoseconds, truncating sub-nanosecond remainders.
func (d Duration[F]) Nanos() uint64 {
	return mulDiv(d.ticks, nanosPerSecond, hzOf[F]())
}

// deadlineNanos is the first whole nanosecond at or after d.
func (d Duration[F]) deadlineNanos() uint64 {
	return mulDivCeil(d.ticks, nanosPerSecond, hzOf[F]())
}

// Std converts d to a time.Duration, saturating at the largest value.
func (d Duration[F]) Std() time.Duration {
	return stdDuration(d.Nanos())
}

// Add returns d+o, saturating.
func (d Duration[F]) Add(o Duration[F]) Duration[F] {
	sum := d.ticks + o.ticks
	if sum < d.ticks {
		sum = math.MaxUint64
	}
	return Duration[F]{ticks: sum}
}

func (d Duration[F]) String() string {
	return fmt.Sprintf("%s (%d ticks @ %d Hz)", d.Std(), d.ticks, hzOf[F]())
}
