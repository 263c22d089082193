package inventory

import "time"

// Clock supplies the current time, e.g., to reject publication years in the future.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock reading the system's wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}
