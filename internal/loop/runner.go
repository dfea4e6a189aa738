package loop

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/randomizedcoder/nbtimer/internal/cancel"
	"github.com/randomizedcoder/nbtimer/internal/nb"
	"github.com/randomizedcoder/nbtimer/internal/stepper"
	"github.com/randomizedcoder/nbtimer/internal/tick"
)

// Runner drives a fixed set of axes.
type Runner[F tick.Rate] struct {
	logger   *slog.Logger
	canceler cancel.Canceler
	inbox    *ring.ShardedRing

	axes    []*stepper.Axis[F]
	byName  map[string]int
	backlog [][]stepper.Step[F]

	status *tick.Periodic[F]

	// submitted is raised before an inbox write and lowered if it fails,
	// so received == submitted only when the inbox is really empty.
	submitted atomic.Uint64
	received  uint64

	iterations         uint64
	reportedIterations uint64
	backlogSteps       int
}

// New creates a Runner over axes, which must have distinct names.
func New[F tick.Rate](cfg Config, canceler cancel.Canceler, axes ...*stepper.Axis[F]) (*Runner[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if canceler == nil {
		return nil, errors.New("canceler cannot be nil")
	}
	if len(axes) == 0 {
		return nil, errors.New("at least one axis is required")
	}

	logger := slog.New(slog.DiscardHandler)
	if cfg.Logger != nil {
		logger = cfg.Logger
	}

	byName := make(map[string]int, len(axes))
	for i, a := range axes {
		if _, dup := byName[a.Name()]; dup {
			return nil, fmt.Errorf("duplicate axis name %q", a.Name())
		}
		byName[a.Name()] = i
	}

	inbox, err := ring.NewShardedRing(cfg.InboxCapacity, cfg.Producers)
	if err != nil {
		return nil, fmt.Errorf("creating inbox: %w", err)
	}

	r := &Runner[F]{
		logger:   logger,
		canceler: canceler,
		inbox:    inbox,
		axes:     axes,
		byName:   byName,
		backlog:  make([][]stepper.Step[F], len(axes)),
	}

	if cfg.StatusInterval > 0 {
		r.status = tick.NewPeriodic(cfg.Clock, tick.FromStd[F](cfg.StatusInterval), tick.Config{
			Name:   "status",
			Logger: logger,
		})
	}

	return r, nil
}

// Submit queues cmd for the loop. It is safe to call from any goroutine and
// never blocks; it returns false when the producer's inbox shard is full.
func (r *Runner[F]) Submit(producerID uint64, cmd Command[F]) bool {
	r.submitted.Add(1)
	if !r.inbox.Write(producerID, cmd) {
		r.submitted.Add(^uint64(0))
		commandsCounter.WithLabelValues("rejected").Inc()
		return false
	}
	return true
}

// RunOnce performs a single loop iteration. Any error is fatal for the run:
// axis timer errors are scheduling bugs and are never retried.
func (r *Runner[F]) RunOnce() error {
	r.iterations++

	if err := r.drain(); err != nil {
		return err
	}
	r.flushBacklog()

	for _, a := range r.axes {
		if res := a.Poll(); res.State() == nb.Failed {
			return res.Err()
		}
	}

	if r.status != nil && r.status.Tick() {
		r.report()
	}
	return nil
}

// Run iterates until the canceler is done, or until until() returns true
// while the loop is idle. A nil until runs until canceled. Axis timers are
// canceled on return.
func (r *Runner[F]) Run(until func() bool) error {
	defer r.stop()

	r.logger.Info("control loop started", "axes", len(r.axes))

	for !r.canceler.Done() {
		if err := r.RunOnce(); err != nil {
			r.logger.Error("control loop failed", "error", err, "iterations", r.iterations)
			return err
		}
		if until != nil && until() && r.Idle() {
			break
		}
	}

	r.logger.Info("control loop stopped", "iterations", r.iterations)
	return nil
}

// Idle reports whether every submitted command has been read, every step
// has been handed to its axis, and every axis has finished its plan.
func (r *Runner[F]) Idle() bool {
	if r.received != r.submitted.Load() || r.backlogSteps > 0 {
		return false
	}
	for _, a := range r.axes {
		if !a.Idle() {
			return false
		}
	}
	return true
}

// Iterations returns the number of completed RunOnce calls.
func (r *Runner[F]) Iterations() uint64 { return r.iterations }

func (r *Runner[F]) drain() error {
	for i := 0; i < maxDrainPerIteration; i++ {
		v, ok := r.inbox.TryRead()
		if !ok {
			return nil
		}
		r.received++

		cmd, ok := v.(Command[F])
		if !ok {
			commandsCounter.WithLabelValues("invalid").Inc()
			return fmt.Errorf("loop: unexpected inbox item %T", v)
		}

		idx, ok := r.byName[cmd.Axis]
		if !ok {
			commandsCounter.WithLabelValues("invalid").Inc()
			return fmt.Errorf("%w: %q", ErrUnknownAxis, cmd.Axis)
		}
		for _, s := range cmd.Steps {
			if !s.Dir.Valid() {
				commandsCounter.WithLabelValues("invalid").Inc()
				return fmt.Errorf("%w: axis %s direction %s", ErrInvalidStep, cmd.Axis, s.Dir)
			}
		}

		commandsCounter.WithLabelValues("accepted").Inc()
		r.backlog[idx] = append(r.backlog[idx], cmd.Steps...)
		r.backlogSteps += len(cmd.Steps)
	}
	return nil
}

// flushBacklog moves as many backlog steps as each axis plan accepts.
func (r *Runner[F]) flushBacklog() {
	if r.backlogSteps == 0 {
		return
	}

	for i, steps := range r.backlog {
		n := 0
		for n < len(steps) && r.axes[i].Enqueue(steps[n]) {
			n++
		}
		r.backlogSteps -= n
		if n > 0 {
			r.backlog[i] = steps[:copy(steps, steps[n:])]
		}
	}
	backlogGauge.Set(float64(r.backlogSteps))
}

func (r *Runner[F]) report() {
	iterationsCounter.Add(float64(r.iterations - r.reportedIterations))
	r.reportedIterations = r.iterations

	attrs := make([]any, 0, 2+len(r.axes))
	attrs = append(attrs, "iterations", r.iterations, "backlog", r.backlogSteps)
	for _, a := range r.axes {
		attrs = append(attrs, slog.Group(a.Name(),
			"pulses", a.Pulses(),
			"position", a.Position(),
			"idle", a.Idle(),
		))
	}
	r.logger.Info("control loop status", attrs...)
}

func (r *Runner[F]) stop() {
	iterationsCounter.Add(float64(r.iterations - r.reportedIterations))
	r.reportedIterations = r.iterations

	if r.status != nil {
		r.status.Stop()
	}
	for _, a := range r.axes {
		if err := a.Stop(); err != nil && !errors.Is(err, tick.ErrAlreadyCanceled) {
			r.logger.Warn("failed to stop axis", "axis", a.Name(), "error", err)
		}
	}
}
