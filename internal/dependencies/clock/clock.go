// Package clock abstracts the wall clock away from the components that
// stamp events and player records, so tests can pin the timestamps they
// assert on.
package clock

import "time"

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system wall clock
type SystemClock struct{}

// New creates a SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current wall clock time
func (SystemClock) Now() time.Time {
	return time.Now()
}
