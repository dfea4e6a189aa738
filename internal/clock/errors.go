package clock

import "errors"

var (
	// ErrTSCNotSupported is returned when TSC is not available on this architecture.
	ErrTSCNotSupported = errors.New("clock: TSC clock requires amd64 architecture")

	// ErrTSCRatio is returned for a non-positive cycles-per-nanosecond ratio.
	ErrTSCRatio = errors.New("clock: TSC cycles per nanosecond must be positive")
)
