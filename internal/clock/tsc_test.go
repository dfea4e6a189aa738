//go:build amd64

package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/nbtimer/internal/clock"
)

func TestCalibrateTSC(t *testing.T) {
	cyclesPerNs, err := clock.CalibrateTSC()
	require.NoError(t, err)

	// Sanity check: should be between 0.5 and 10 cycles/ns
	// (500MHz to 10GHz CPUs)
	if cyclesPerNs < 0.5 || cyclesPerNs > 10 {
		t.Errorf("CalibrateTSC() = %f, expected between 0.5 and 10", cyclesPerNs)
	}

	t.Logf("Calibrated TSC: %.2f cycles/ns (%.2f GHz equivalent)", cyclesPerNs, cyclesPerNs)
}

func TestTSC_CyclesPerNs(t *testing.T) {
	c, err := clock.NewTSC(3.0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, c.CyclesPerNs())
}

func TestTSC_InvalidRatio(t *testing.T) {
	_, err := clock.NewTSC(0)
	assert.ErrorIs(t, err, clock.ErrTSCRatio)
}

func TestTSC_Monotonic(t *testing.T) {
	c, err := clock.NewTSCCalibrated()
	require.NoError(t, err)

	prev := c.Nanos()
	for i := 0; i < 10000; i++ {
		now := c.Nanos()
		require.GreaterOrEqual(t, now, prev)
		prev = now
	}

	start := c.Nanos()
	time.Sleep(20 * time.Millisecond)
	elapsed := clock.Since(c, start)

	// Calibration is approximate; allow generous slack either way.
	assert.Greater(t, elapsed, 10*time.Millisecond)
	assert.Less(t, elapsed, 200*time.Millisecond)
}
