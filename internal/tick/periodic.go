package tick

import (
	"github.com/randomizedcoder/nbtimer/internal/clock"
	"github.com/randomizedcoder/nbtimer/internal/nb"
)

// Periodic is a Ticker built on a Timer that re-arms itself.
//
// Each interval is measured from the poll that observed the previous
// expiry, so late polls push later ticks back rather than bunching them up.
type Periodic[F Rate] struct {
	timer    *Timer[F]
	interval Duration[F]
	err      error
}

// NewPeriodic creates a Periodic whose first tick is one interval from now.
func NewPeriodic[F Rate](clk clock.Clock, interval Duration[F], cfg Config) *Periodic[F] {
	p := &Periodic[F]{
		timer:    New[F](clk, cfg),
		interval: interval,
	}
	// A fresh timer is running and unarmed, so Start cannot fail.
	_ = p.timer.Start(interval)
	return p
}

// Tick returns true if the interval has elapsed since the last tick.
//
// A timer error stops the ticker; it is kept for Err and Tick returns
// false from then on.
func (p *Periodic[F]) Tick() bool {
	if p.err != nil {
		return false
	}

	r := p.timer.Wait()
	switch r.State() {
	case nb.Ready:
		if err := p.timer.Start(p.interval); err != nil {
			p.err = err
			return false
		}
		return true
	case nb.Failed:
		p.err = r.Err()
	}
	return false
}

// Stop cancels the underlying timer. Safe to call multiple times.
func (p *Periodic[F]) Stop() {
	_ = p.timer.Cancel()
}

// Err returns the error that stopped the ticker, if any.
// After Stop it is ErrAlreadyCanceled once Tick has been called.
func (p *Periodic[F]) Err() error { return p.err }

// Interval returns the ticker's interval.
func (p *Periodic[F]) Interval() Duration[F] { return p.interval }
