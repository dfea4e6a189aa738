package stepper_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/randomizedcoder/nbtimer/internal/clock"
	"github.com/randomizedcoder/nbtimer/internal/stepper"
)

func TestRecorder_Intervals(t *testing.T) {
	t.Parallel()

	clk := clock.NewManual(0)
	rec := stepper.NewRecorder(clk, 4)

	assert.Equal(t, stepper.IntervalStats{}, rec.Intervals())

	for _, gap := range []time.Duration{0, 2 * time.Millisecond, 4 * time.Millisecond, 3 * time.Millisecond} {
		clk.Advance(gap)
		_ = rec.Pulse(stepper.Forward)
	}

	assert.Equal(t, stepper.IntervalStats{
		Count: 3,
		Min:   2 * time.Millisecond,
		Max:   4 * time.Millisecond,
		Mean:  3 * time.Millisecond,
	}, rec.Intervals())
	assert.Len(t, rec.Pulses(), 4)
}

func TestLateWarner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	w := stepper.NewLateWarner(logger, time.Millisecond, time.Hour, 1)

	w.Expired("pan", 10*time.Millisecond, 10*time.Millisecond+500*time.Microsecond)
	assert.Equal(t, uint64(0), w.Late(), "within tolerance")
	assert.Empty(t, buf.String())

	w.Expired("pan", 10*time.Millisecond, 13*time.Millisecond)
	assert.Equal(t, uint64(1), w.Late())
	assert.Contains(t, buf.String(), "step timer expired late")
	assert.Contains(t, buf.String(), "overshoot=3ms")

	buf.Reset()
	w.Expired("tilt", 10*time.Millisecond, 20*time.Millisecond)
	assert.Equal(t, uint64(2), w.Late())
	assert.Empty(t, buf.String(), "rate limited")
}
