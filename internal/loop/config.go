package loop

import (
	"errors"
	"log/slog"
	"time"

	"github.com/randomizedcoder/nbtimer/internal/clock"
)

// Config configures a Runner.
type Config struct {
	Logger *slog.Logger

	// Clock drives the status ticker. Nil uses clock.Runtime. Axes carry
	// their own clocks.
	Clock clock.Clock

	// InboxCapacity is the total number of commands the inbox can hold.
	InboxCapacity uint64

	// Producers is the number of inbox shards; producer IDs passed to
	// Submit are spread across them.
	Producers uint64

	// StatusInterval is how often a status record is logged. Zero disables.
	StatusInterval time.Duration
}

// Validate checks inbox sizing and the status interval.
func (c *Config) Validate() error {
	if c.InboxCapacity == 0 {
		return errors.New("inbox capacity must be greater than 0")
	}
	if c.Producers == 0 {
		return errors.New("producers must be greater than 0")
	}
	if c.Producers > c.InboxCapacity {
		return errors.New("producers must not exceed inbox capacity")
	}
	if c.StatusInterval < 0 {
		return errors.New("status interval must not be negative")
	}
	return nil
}
