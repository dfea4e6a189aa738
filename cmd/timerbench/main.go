// Command timerbench measures the per-call cost of the pieces a
// non-blocking control loop polls on every iteration.
//
// Usage:
//
//	go run ./cmd/timerbench clock -n 10000000
//	go run ./cmd/timerbench wait -n 10000000
//	go run ./cmd/timerbench loop -n 10000000 --size 1024
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"

	_ "github.com/joho/godotenv/autoload"
	_ "go.uber.org/automaxprocs"

	"github.com/randomizedcoder/nbtimer/internal/cancel"
	"github.com/randomizedcoder/nbtimer/internal/clock"
	"github.com/randomizedcoder/nbtimer/internal/queue"
	"github.com/randomizedcoder/nbtimer/internal/stepper"
	"github.com/randomizedcoder/nbtimer/internal/tick"
)

type rate = tick.MHz1

// Long so timers stay pending and we measure check overhead, not expiry.
const pendingInterval = time.Hour

const rule = "─────────────────────────────────────────────────────────"

type result struct {
	name string
	dur  time.Duration
}

func main() {
	app := cli.App{
		Name:    "timerbench",
		Usage:   "measure clock reads, timer polls and control loop iterations",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "n",
				Usage:   "number of iterations",
				Value:   10_000_000,
				EnvVars: []string{"TIMERBENCH_N"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "clock",
				Usage:  "compare monotonic clock sources",
				Action: benchClock,
			},
			{
				Name:   "wait",
				Usage:  "compare Timer.Wait against std library tick checks",
				Action: benchWait,
			},
			{
				Name:  "loop",
				Usage: "combined cancel + wait + plan queue iteration",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "size",
						Usage: "plan queue size",
						Value: 1024,
					},
				},
				Action: benchLoop,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func benchClock(cctx *cli.Context) error {
	n := cctx.Int("n")
	header(fmt.Sprintf("Benchmarking clock reads (%d iterations)", n))

	clocks := []struct {
		name string
		clk  clock.Clock
	}{
		{"time.Now", clock.Func(func() uint64 { return uint64(time.Now().UnixNano()) })},
		{"runtime", clock.Runtime},
	}
	if tsc, err := clock.NewTSCCalibrated(); err == nil {
		fmt.Printf("TSC: %.3f cycles/ns\n", tsc.CyclesPerNs())
		clocks = append(clocks, struct {
			name string
			clk  clock.Clock
		}{"tsc", tsc})
	} else {
		fmt.Printf("TSC unavailable: %v\n", err)
	}

	results := make([]result, 0, len(clocks))
	var sink uint64
	for _, c := range clocks {
		start := time.Now()
		for i := 0; i < n; i++ {
			sink += c.clk.Nanos()
		}
		results = append(results, result{c.name, time.Since(start)})
	}
	_ = sink

	report(results, n)
	return nil
}

func benchWait(cctx *cli.Context) error {
	n := cctx.Int("n")
	header(fmt.Sprintf("Benchmarking timer poll (%d iterations)", n))

	var results []result

	std := time.NewTicker(pendingInterval)
	start := time.Now()
	for i := 0; i < n; i++ {
		select {
		case <-std.C:
		default:
		}
	}
	results = append(results, result{"time.Ticker select", time.Since(start)})
	std.Stop()

	for _, c := range []struct {
		name string
		clk  clock.Clock
	}{
		{"Timer.Wait runtime", clock.Runtime},
		{"Timer.Wait manual", clock.NewManual(0)},
	} {
		t := tick.New[rate](c.clk, tick.Config{})
		if err := t.Start(tick.FromStd[rate](pendingInterval)); err != nil {
			return err
		}
		start := time.Now()
		for i := 0; i < n; i++ {
			_ = t.Wait()
		}
		results = append(results, result{c.name, time.Since(start)})
	}

	p := tick.NewPeriodic[rate](clock.Runtime, tick.FromStd[rate](pendingInterval), tick.Config{})
	start = time.Now()
	for i := 0; i < n; i++ {
		_ = p.Tick()
	}
	results = append(results, result{"Periodic.Tick", time.Since(start)})
	p.Stop()

	report(results, n)
	return nil
}

func benchLoop(cctx *cli.Context) error {
	n := cctx.Int("n")
	size := cctx.Int("size")
	header(fmt.Sprintf("Benchmarking control loop iteration (%d iterations, size=%d)", n, size))

	fmt.Println("Each iteration does what the stepper loop does while waiting:")
	fmt.Println()
	fmt.Println("  for !cancel.Done() {")
	fmt.Println("      if timer.Wait().IsReady() { pulse(); timer.Start(plan.Pop()) }")
	fmt.Println("  }")
	fmt.Println()

	var results []result
	for _, c := range []struct {
		name     string
		canceler cancel.Canceler
		kind     queue.Kind
	}{
		{"context + channel", cancel.NewContext(context.Background()), queue.KindChannel},
		{"atomic + channel", cancel.NewAtomic(), queue.KindChannel},
		{"atomic + ring", cancel.NewAtomic(), queue.KindRing},
	} {
		plan, ok := queue.New[stepper.Step[rate]](c.kind, size)
		if !ok {
			return fmt.Errorf("unknown queue kind %q", c.kind)
		}
		step := stepper.Step[rate]{Interval: tick.FromStd[rate](pendingInterval), Dir: stepper.Forward}
		for plan.Push(step) {
		}

		t := tick.New[rate](clock.Runtime, tick.Config{})
		if err := t.Start(step.Interval); err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < n; i++ {
			if c.canceler.Done() {
				break
			}
			if t.Wait().IsReady() {
				s, _ := plan.Pop()
				_ = t.Start(s.Interval)
			}
			// Recycle so the plan traffic is part of every iteration.
			if s, ok := plan.Pop(); ok {
				plan.Push(s)
			}
		}
		results = append(results, result{c.name, time.Since(start)})
	}

	report(results, n)
	return nil
}

func header(title string) {
	fmt.Println(title)
	fmt.Printf("Architecture: %s/%s, GOMAXPROCS=%d\n", runtime.GOOS, runtime.GOARCH, runtime.GOMAXPROCS(0))
	fmt.Println(rule)
}

// report prints per-op cost relative to the first result.
func report(results []result, n int) {
	fmt.Printf("\nResults:\n")
	baseline := float64(results[0].dur.Nanoseconds()) / float64(n)

	for _, r := range results {
		perOp := float64(r.dur.Nanoseconds()) / float64(n)
		fmt.Printf("  %-22s %12v  %8.2f ns/op  %6.2fx  %8.2f M/s\n",
			r.name, r.dur, perOp, baseline/perOp, 1000/perOp)
	}
}
