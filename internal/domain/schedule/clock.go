package schedule

import "time"

type Clock interface {
	Now() time.Time
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// Today is the wall-clock date of clock.Now().
func Today(clock Clock) time.Time {
	return DateOf(clock.Now())
}
