//go:build !amd64

package clock

// TSC is a stub for non-amd64 architectures.
// Use Runtime instead for cross-platform code.
type TSC struct{}

// CalibrateTSC returns an error on non-amd64 architectures.
func CalibrateTSC() (float64, error) {
	return 0, ErrTSCNotSupported
}

// NewTSC returns an error on non-amd64 architectures.
func NewTSC(cyclesPerNs float64) (*TSC, error) {
	return nil, ErrTSCNotSupported
}

// NewTSCCalibrated returns an error on non-amd64 architectures.
func NewTSCCalibrated() (*TSC, error) {
	return nil, ErrTSCNotSupported
}

// Nanos always returns 0 on stub implementation.
func (t *TSC) Nanos() uint64 { return 0 }

// CyclesPerNs returns 0 on stub implementation.
func (t *TSC) CyclesPerNs() float64 { return 0 }
