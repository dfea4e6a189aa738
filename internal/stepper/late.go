package stepper

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// LateWarner is a tick.Observer that logs step timers expiring later than
// a tolerance allows.
//
// Warnings are rate limited so a stalled loop cannot flood the log; the
// number of warnings dropped since the last one is attached to the next.
// It must only be used from one control loop goroutine.
type LateWarner struct {
	logger     *slog.Logger
	tolerance  time.Duration
	limiter    *rate.Limiter
	late       uint64
	suppressed uint64
}

// NewLateWarner logs at most one warning per every (with bursts of burst)
// for expiries more than tolerance past their deadline.
func NewLateWarner(logger *slog.Logger, tolerance, every time.Duration, burst int) *LateWarner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LateWarner{
		logger:    logger,
		tolerance: tolerance,
		limiter:   rate.NewLimiter(rate.Every(every), burst),
	}
}

// Expired implements tick.Observer.
func (w *LateWarner) Expired(name string, requested, elapsed time.Duration) {
	overshoot := elapsed - requested
	if overshoot <= w.tolerance {
		return
	}

	w.late++
	if !w.limiter.Allow() {
		w.suppressed++
		return
	}

	w.logger.Warn("step timer expired late",
		"timer", name,
		"requested", requested,
		"elapsed", elapsed,
		"overshoot", overshoot,
		"tolerance", w.tolerance,
		"suppressed", w.suppressed,
	)
	w.suppressed = 0
}

// Late returns how many expiries exceeded the tolerance.
func (w *LateWarner) Late() uint64 { return w.late }
