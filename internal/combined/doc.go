// Package combined benchmarks the control loop's hot path end to end.
//
// A loop iteration pays for a cancellation check, a timer poll, and queue
// traffic together; these benchmarks measure that sum rather than each part
// in isolation, and compare the inbox against a plain channel under
// multiple producers.
package combined
