package ports

import "time"

type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the local timezone.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
