package stepper

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/randomizedcoder/nbtimer/internal/clock"
	"github.com/randomizedcoder/nbtimer/internal/nb"
	"github.com/randomizedcoder/nbtimer/internal/queue"
	"github.com/randomizedcoder/nbtimer/internal/tick"
)

// Config configures an Axis.
type Config[F tick.Rate] struct {
	// Name identifies the axis in logs, metrics and loop commands.
	Name string

	// Clock drives the axis timer. Nil uses clock.Runtime.
	Clock clock.Clock

	// Plan buffers upcoming steps.
	Plan queue.Queue[Step[F]]

	Backend Backend

	Logger *slog.Logger

	// Observer is told about every completed step interval, in addition
	// to the built-in overshoot histogram.
	Observer tick.Observer
}

// Validate checks that the required fields are set.
func (c *Config[F]) Validate() error {
	if c.Name == "" {
		return errors.New("axis name must not be empty")
	}
	if c.Plan == nil {
		return errors.New("plan queue cannot be nil")
	}
	if c.Backend == nil {
		return errors.New("backend cannot be nil")
	}
	return nil
}

// Axis schedules the pulses of one stepper motor.
//
// An Axis is driven by a single control loop goroutine; none of its
// methods are safe for concurrent use.
type Axis[F tick.Rate] struct {
	name    string
	timer   *tick.Timer[F]
	plan    queue.Queue[Step[F]]
	backend Backend

	current Step[F]
	active  bool

	pulses   uint64
	position int64

	pulseCounter prometheus.Counter
	errorCounter prometheus.Counter
}

// NewAxis creates an idle axis with a running, unarmed timer.
func NewAxis[F tick.Rate](cfg Config[F]) (*Axis[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := slog.New(slog.DiscardHandler)
	if cfg.Logger != nil {
		logger = cfg.Logger
	}

	timer := tick.New[F](cfg.Clock, tick.Config{
		Name:     cfg.Name,
		Logger:   logger.With("axis", cfg.Name),
		Observer: tick.Observers(overshootObserver{}, cfg.Observer),
	})

	return &Axis[F]{
		name:         cfg.Name,
		timer:        timer,
		plan:         cfg.Plan,
		backend:      cfg.Backend,
		pulseCounter: pulsesCounter.WithLabelValues(cfg.Name),
		errorCounter: axisErrorsCounter.WithLabelValues(cfg.Name),
	}, nil
}

// Enqueue appends s to the plan. It returns false if the plan is full.
func (a *Axis[F]) Enqueue(s Step[F]) bool {
	return a.plan.Push(s)
}

// Poll advances the axis by one loop iteration.
//
// It returns Ready with the total pulse count on the iteration that emitted
// a pulse, Pending otherwise (including when the plan is empty), and Failed
// when the timer or the backend fails. A failed axis should not be polled
// again.
func (a *Axis[F]) Poll() nb.Result[uint64] {
	if !a.timer.Running() {
		return a.fail(tick.ErrAlreadyCanceled)
	}
	if !a.active {
		if err := a.next(); err != nil {
			return a.fail(err)
		}
		if !a.active {
			return nb.WouldBlock[uint64]()
		}
	}

	r := a.timer.Wait()
	switch r.State() {
	case nb.Pending:
		return nb.WouldBlock[uint64]()
	case nb.Failed:
		return a.fail(r.Err())
	}

	if err := a.backend.Pulse(a.current.Dir); err != nil {
		return a.fail(fmt.Errorf("pulse: %w", err))
	}
	a.pulses++
	a.position += int64(a.current.Dir)
	a.pulseCounter.Inc()
	a.active = false

	if err := a.next(); err != nil {
		return a.fail(err)
	}
	return nb.Done(a.pulses)
}

// next arms the timer with the next planned step, if there is one.
func (a *Axis[F]) next() error {
	s, ok := a.plan.Pop()
	if !ok {
		return nil
	}
	if err := a.timer.Start(s.Interval); err != nil {
		return err
	}
	a.current = s
	a.active = true
	return nil
}

func (a *Axis[F]) fail(err error) nb.Result[uint64] {
	a.errorCounter.Inc()
	return nb.Fail[uint64](fmt.Errorf("axis %s: %w", a.name, err))
}

// Stop cancels the axis timer. Further polls fail with
// tick.ErrAlreadyCanceled and leave planned steps in the plan.
func (a *Axis[F]) Stop() error {
	return a.timer.Cancel()
}

// Idle reports whether the axis has no step in progress and nothing planned.
func (a *Axis[F]) Idle() bool {
	return !a.active && a.plan.Len() == 0
}

// Name returns the axis name from Config.
func (a *Axis[F]) Name() string { return a.name }

// Pulses returns the number of pulses emitted.
func (a *Axis[F]) Pulses() uint64 { return a.pulses }

// Position returns forward pulses minus reverse pulses.
func (a *Axis[F]) Position() int64 { return a.position }
