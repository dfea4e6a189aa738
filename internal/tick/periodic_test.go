package tick_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/randomizedcoder/nbtimer/internal/clock"
	"github.com/randomizedcoder/nbtimer/internal/tick"
)

func TestPeriodic(t *testing.T) {
	t.Parallel()

	clk := clock.NewManual(clockStart)
	p := tick.NewPeriodic(clk, tick.Millis[tick.KHz1](10), tick.Config{Name: "status"})
	defer p.Stop()

	assert.False(t, p.Tick(), "immediately after creation")

	clk.Advance(9 * time.Millisecond)
	assert.False(t, p.Tick(), "+9ms")

	clk.Advance(time.Millisecond)
	assert.True(t, p.Tick(), "+10ms")
	assert.False(t, p.Tick(), "immediately after tick")

	clk.Advance(10 * time.Millisecond)
	assert.True(t, p.Tick(), "+20ms")
	assert.NoError(t, p.Err())
	assert.Equal(t, uint64(10), p.Interval().Ticks())
}

func TestPeriodic_LatePoll(t *testing.T) {
	t.Parallel()

	clk := clock.NewManual(clockStart)
	p := tick.NewPeriodic(clk, tick.Millis[tick.KHz1](10), tick.Config{})

	clk.Advance(35 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.False(t, p.Tick(), "missed intervals are not replayed")

	clk.Advance(9 * time.Millisecond)
	assert.False(t, p.Tick(), "next interval counts from the late poll")
	clk.Advance(time.Millisecond)
	assert.True(t, p.Tick())
}

func TestPeriodic_Stop(t *testing.T) {
	t.Parallel()

	clk := clock.NewManual(clockStart)
	var ticker tick.Ticker = tick.NewPeriodic(clk, tick.Millis[tick.KHz1](1), tick.Config{})

	ticker.Stop()
	ticker.Stop()

	clk.Advance(time.Second)
	assert.False(t, ticker.Tick())
	assert.ErrorIs(t, ticker.(*tick.Periodic[tick.KHz1]).Err(), tick.ErrAlreadyCanceled)
}
