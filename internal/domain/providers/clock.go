package providers

import "time"

// Clock abstracts wall-clock time so freshness checks can be tested deterministically
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time
type SystemClock struct{}

// Now returns the current UTC time
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
