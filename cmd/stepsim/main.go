// Command stepsim drives simulated stepper axes from the non-blocking
// control loop and reports how closely pulses followed their schedule.
//
// Usage:
//
//	go run ./cmd/stepsim --axes pan,tilt --steps 2000 --interval 500us
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	_ "github.com/joho/godotenv/autoload"
	_ "go.uber.org/automaxprocs"

	"github.com/randomizedcoder/nbtimer/internal/cancel"
	"github.com/randomizedcoder/nbtimer/internal/clock"
	"github.com/randomizedcoder/nbtimer/internal/loop"
	"github.com/randomizedcoder/nbtimer/internal/queue"
	"github.com/randomizedcoder/nbtimer/internal/stepper"
	"github.com/randomizedcoder/nbtimer/internal/tick"
)

type rate = tick.MHz1

// Steps per submitted command.
const chunkSize = 16

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:    "stepsim",
		Usage:   "simulate stepper axes driven by a non-blocking tick timer loop",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "axes",
				Usage:   "names of the simulated axes",
				Value:   cli.NewStringSlice("pan", "tilt"),
				EnvVars: []string{"STEPSIM_AXES"},
			},
			&cli.IntFlag{
				Name:    "steps",
				Usage:   "steps per axis; the first half runs forward, the rest in reverse",
				Value:   2000,
				EnvVars: []string{"STEPSIM_STEPS"},
			},
			&cli.DurationFlag{
				Name:    "interval",
				Usage:   "time between steps",
				Value:   500 * time.Microsecond,
				EnvVars: []string{"STEPSIM_INTERVAL"},
			},
			&cli.StringFlag{
				Name:    "clock",
				Usage:   "monotonic clock source: runtime or tsc",
				Value:   "runtime",
				EnvVars: []string{"STEPSIM_CLOCK"},
			},
			&cli.StringFlag{
				Name:    "queue",
				Usage:   "axis plan queue: ring or channel",
				Value:   string(queue.KindRing),
				EnvVars: []string{"STEPSIM_QUEUE"},
			},
			&cli.IntFlag{
				Name:    "plan-size",
				Usage:   "capacity of each axis plan queue",
				Value:   256,
				EnvVars: []string{"STEPSIM_PLAN_SIZE"},
			},
			&cli.IntFlag{
				Name:    "producers",
				Usage:   "goroutines submitting step commands",
				Value:   2,
				EnvVars: []string{"STEPSIM_PRODUCERS"},
			},
			&cli.Uint64Flag{
				Name:    "inbox-capacity",
				Usage:   "total capacity of the loop inbox",
				Value:   4096,
				EnvVars: []string{"STEPSIM_INBOX_CAPACITY"},
			},
			&cli.DurationFlag{
				Name:    "status-interval",
				Usage:   "interval between status records, 0 disables",
				Value:   loop.DefaultStatusInterval,
				EnvVars: []string{"STEPSIM_STATUS_INTERVAL"},
			},
			&cli.DurationFlag{
				Name:    "late-tolerance",
				Usage:   "warn when a step fires later than this past its deadline",
				Value:   100 * time.Microsecond,
				EnvVars: []string{"STEPSIM_LATE_TOLERANCE"},
			},
			&cli.StringFlag{
				Name:    "metrics-listen",
				Usage:   "address to serve prometheus metrics on, empty disables",
				EnvVars: []string{"STEPSIM_METRICS_LISTEN"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "info",
				EnvVars: []string{"STEPSIM_LOG_LEVEL", "LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "log-json",
				Usage:   "log as JSON instead of text",
				EnvVars: []string{"STEPSIM_LOG_JSON"},
			},
		},
		Action: simulate,
	}

	return app.Run(args)
}

func newLogger(cctx *cli.Context) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cctx.String("log-level"))); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	if cctx.Bool("log-json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
}

func newClock(name string) (clock.Clock, error) {
	switch name {
	case "runtime":
		return clock.Runtime, nil
	case "tsc":
		tsc, err := clock.NewTSCCalibrated()
		if err != nil {
			return nil, fmt.Errorf("tsc clock: %w", err)
		}
		return tsc, nil
	default:
		return nil, fmt.Errorf("unknown clock %q", name)
	}
}

type simAxis struct {
	axis     *stepper.Axis[rate]
	recorder *stepper.Recorder
}

func simulate(cctx *cli.Context) error {
	logger, err := newLogger(cctx)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	names := cctx.StringSlice("axes")
	steps := cctx.Int("steps")
	interval := tick.FromStd[rate](cctx.Duration("interval"))
	producers := cctx.Int("producers")
	if len(names) == 0 {
		return errors.New("at least one axis is required")
	}
	if steps < 0 {
		return errors.New("steps must not be negative")
	}
	if producers < 1 {
		return errors.New("producers must be at least 1")
	}

	clk, err := newClock(cctx.String("clock"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if addr := cctx.String("metrics-listen"); addr != "" {
		srv := serveMetrics(addr, logger)
		defer func() {
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics server shutdown failed", "err", err)
			}
		}()
	}

	late := stepper.NewLateWarner(logger, cctx.Duration("late-tolerance"), time.Second, 5)

	sims := make([]simAxis, 0, len(names))
	axes := make([]*stepper.Axis[rate], 0, len(names))
	for _, name := range names {
		plan, ok := queue.New[stepper.Step[rate]](queue.Kind(cctx.String("queue")), cctx.Int("plan-size"))
		if !ok {
			return fmt.Errorf("unknown queue kind %q", cctx.String("queue"))
		}

		rec := stepper.NewRecorder(clk, steps)
		axis, err := stepper.NewAxis(stepper.Config[rate]{
			Name:     name,
			Clock:    clk,
			Plan:     plan,
			Backend:  rec,
			Logger:   logger,
			Observer: late,
		})
		if err != nil {
			return fmt.Errorf("creating axis %s: %w", name, err)
		}
		sims = append(sims, simAxis{axis: axis, recorder: rec})
		axes = append(axes, axis)
	}

	canceler := cancel.NewContext(ctx)
	runner, err := loop.New(loop.Config{
		Logger:         logger,
		Clock:          clk,
		InboxCapacity:  cctx.Uint64("inbox-capacity"),
		Producers:      uint64(producers),
		StatusInterval: cctx.Duration("status-interval"),
	}, canceler, axes...)
	if err != nil {
		return fmt.Errorf("creating control loop: %w", err)
	}

	logger.Info("starting simulation",
		"version", cctx.App.Version,
		"axes", names,
		"steps", steps,
		"interval", interval,
		"clock", cctx.String("clock"),
		"queue", cctx.String("queue"),
		"producers", producers,
	)

	var producersDone atomic.Bool
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			// Each axis belongs to one producer so its steps stay in order.
			for i := pid; i < len(names); i += producers {
				produce(canceler, runner, uint64(pid), names[i], steps, interval)
			}
		}(p)
	}
	go func() {
		wg.Wait()
		producersDone.Store(true)
	}()

	start := time.Now()
	runErr := runner.Run(producersDone.Load)
	canceler.Cancel()
	wg.Wait()

	for _, s := range sims {
		st := s.recorder.Intervals()
		logger.Info("axis summary",
			"axis", s.axis.Name(),
			"pulses", s.axis.Pulses(),
			"position", s.axis.Position(),
			"interval_target", interval.Std(),
			"interval_min", st.Min,
			"interval_max", st.Max,
			"interval_mean", st.Mean,
			"interval_mean_error", st.Mean-interval.Std(),
		)
	}
	logger.Info("simulation finished",
		"elapsed", time.Since(start),
		"iterations", runner.Iterations(),
		"late_steps", late.Late(),
	)

	return runErr
}

// produce submits steps for one axis, sweeping forward then back.
func produce(c cancel.Canceler, r *loop.Runner[rate], pid uint64, axis string, steps int, interval tick.Duration[rate]) {
	for sent := 0; sent < steps; {
		n := min(chunkSize, steps-sent)
		cmd := loop.Command[rate]{Axis: axis, Steps: make([]stepper.Step[rate], n)}
		for i := range cmd.Steps {
			dir := stepper.Forward
			if sent+i >= steps/2 {
				dir = stepper.Reverse
			}
			cmd.Steps[i] = stepper.Step[rate]{Interval: interval, Dir: dir}
		}

		for !r.Submit(pid, cmd) {
			if c.Done() {
				return
			}
			time.Sleep(interval.Std())
		}
		sent += n
	}
}

func serveMetrics(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	}()
	return srv
}
