// Package timeutil provides a testable abstraction over the wall clock.
package timeutil

import "time"

// Clock provides an abstraction over time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Since returns the duration since t.
	Since(t time.Time) time.Duration
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t.
func (RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// FixedClock always reports the same instant. Since measures from that
// instant, so durations are stable in tests.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}

// Since returns the duration between t and the fixed instant.
func (c FixedClock) Since(t time.Time) time.Duration {
	return c.T.Sub(t)
}

// RunStamp formats t as the compact run identifier used in output
// directory names, e.g. 20260107-173129.
func RunStamp(t time.Time) string {
	return t.UTC().Format("20060102-150405")
}
