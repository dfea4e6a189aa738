package tick

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/randomizedcoder/nbtimer/internal/clock"
	"github.com/randomizedcoder/nbtimer/internal/nb"
)

// Config holds the optional collaborators of a Timer.
type Config struct {
	// Name identifies the timer in logs and observer calls, e.g. an axis name.
	Name string

	// Logger receives a Debug record per completed arm-cycle.
	// Nil discards.
	Logger *slog.Logger

	// Observer is told the requested and actual length of each completed
	// arm-cycle. Nil disables.
	Observer Observer
}

// Timer is a one-shot, re-armable, non-blocking timer counting ticks at rate F.
//
// Lifecycle:
//
//	New -> Start -> Wait (Pending ... Ready) -> Start -> ...
//
// Cancel may be called from any state and is permanent: afterwards Start,
// Wait and Cancel all fail with ErrAlreadyCanceled.
type Timer[F Rate] struct {
	clk    clock.Clock
	hz     uint64
	period time.Duration

	running  bool
	armed    bool
	reported bool

	epochNs  uint64
	startNs  uint64
	duration Duration[F]

	name     string
	logger   *slog.Logger
	observer Observer
}

// New creates a running, unarmed timer reading clk. A nil clk uses
// clock.Runtime.
//
// New panics if F reports 0 Hz or more than MaxHz.
func New[F Rate](clk clock.Clock, cfg Config) *Timer[F] {
	hz := hzOf[F]()
	if hz > MaxHz {
		var f F
		panic(fmt.Sprintf("tick: rate %T reports %d Hz, above %d", f, hz, MaxHz))
	}

	if clk == nil {
		clk = clock.Runtime
	}

	logger := slog.New(slog.DiscardHandler)
	if cfg.Logger != nil {
		logger = cfg.Logger
	}

	now := clk.Nanos()
	return &Timer[F]{
		clk:      clk,
		hz:       hz,
		period:   time.Second / time.Duration(hz),
		running:  true,
		epochNs:  now,
		startNs:  now,
		name:     cfg.Name,
		logger:   logger,
		observer: cfg.Observer,
	}
}

// Now returns the ticks elapsed since the timer was created, truncated.
//
// The tick count is computed from elapsed nanoseconds with exact integer
// arithmetic, so it does not drift for rates that do not divide 1 GHz.
// Now works on canceled timers too.
func (t *Timer[F]) Now() Instant[F] {
	elapsed := t.clk.Nanos() - t.epochNs
	return Instant[F]{ticks: mulDiv(elapsed, t.hz, nanosPerSecond)}
}

// Start arms the timer for d, measured from now.
//
// It fails with ErrAlreadyCanceled after Cancel, and with ErrStillArmed if
// the previous duration has not yet expired. Start emits nothing itself;
// it only begins the countdown that Wait observes.
func (t *Timer[F]) Start(d Duration[F]) error {
	if !t.running {
		return ErrAlreadyCanceled
	}

	if t.armed {
		elapsed := t.elapsedNs()
		required := t.duration.deadlineNanos()
		if elapsed < required {
			return fmt.Errorf("%w: %s remaining", ErrStillArmed, stdDuration(required-elapsed))
		}
	}

	t.startNs = t.clk.Nanos()
	t.duration = d
	t.armed = true
	t.reported = false
	return nil
}

// Cancel permanently stops the timer.
// Canceling twice returns ErrAlreadyCanceled.
func (t *Timer[F]) Cancel() error {
	if !t.running {
		return ErrAlreadyCanceled
	}
	t.running = false
	return nil
}

// Wait polls the timer once.
//
// It returns Pending until the armed duration has elapsed and Ready from
// then on, until the next Start. A timer that was never started is
// Pending. After Cancel, Wait fails with ErrAlreadyCanceled.
func (t *Timer[F]) Wait() nb.Result[struct{}] {
	if !t.running {
		return nb.Fail[struct{}](ErrAlreadyCanceled)
	}
	if !t.armed {
		return nb.WouldBlock[struct{}]()
	}

	required := t.duration.deadlineNanos()
	elapsed := t.elapsedNs()
	if elapsed < required {
		return nb.WouldBlock[struct{}]()
	}

	if !t.reported {
		t.reported = true
		t.report(required, elapsed)
	}
	return nb.Done(struct{}{})
}

func (t *Timer[F]) report(required, elapsed uint64) {
	req := stdDuration(required)
	el := stdDuration(elapsed)

	t.logger.Debug("timer expired",
		"timer", t.name,
		"requested", req,
		"elapsed", el,
		"overshoot", el-req,
	)

	if t.observer != nil {
		t.observer.Expired(t.name, req, el)
	}
}

func (t *Timer[F]) elapsedNs() uint64 {
	return t.clk.Nanos() - t.startNs
}

// Elapsed returns the time since the last successful Start, or since
// creation if the timer was never started.
func (t *Timer[F]) Elapsed() time.Duration {
	return stdDuration(t.elapsedNs())
}

// Uptime returns the time since the timer was created.
func (t *Timer[F]) Uptime() time.Duration {
	return stdDuration(t.clk.Nanos() - t.epochNs)
}

// Remaining returns the time left in the current arm-cycle. It is zero
// when the timer is unarmed, expired or canceled.
func (t *Timer[F]) Remaining() time.Duration {
	if !t.running || !t.armed {
		return 0
	}
	required := t.duration.deadlineNanos()
	elapsed := t.elapsedNs()
	if elapsed >= required {
		return 0
	}
	return stdDuration(required - elapsed)
}

// Running reports whether the timer has not been canceled.
func (t *Timer[F]) Running() bool { return t.running }

// Duration returns the duration of the current or last arm-cycle.
func (t *Timer[F]) Duration() Duration[F] { return t.duration }

// TickPeriod returns the length of one tick, truncated to whole
// nanoseconds. It is informational; tick arithmetic never uses it.
func (t *Timer[F]) TickPeriod() time.Duration { return t.period }

// Hz returns the timer's tick rate.
func (t *Timer[F]) Hz() uint32 { return uint32(t.hz) }

// Name returns the name from Config.
func (t *Timer[F]) Name() string { return t.name }
