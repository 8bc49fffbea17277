package countdown

import "time"

// Clock is the time source used by a Timer.
//
// Implementations must return times that carry a monotonic reading (as
// time.Now does) or are otherwise non-decreasing, because elapsed time is
// computed with time.Time.Sub.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock implements Clock using time.Now.
type SystemClock struct{}

// Now returns time.Now(), which includes Go's monotonic clock reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Compile-time interface satisfaction check.
var _ Clock = SystemClock{}
