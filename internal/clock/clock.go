// Package clock abstracts "today" so due-date, overdue, and interest-window
// evaluation stays deterministic under test.
package clock

import "time"

// Clock supplies the current moment. Services depend on this interface, not
// on time.Now, for every date comparison.
type Clock interface {
	Now() time.Time
	// Today is Now truncated to a calendar date, midnight UTC.
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func (systemClock) Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// System returns the wall clock.
func System() Clock {
	return systemClock{}
}

// Fixed returns a clock frozen at t, for tests.
func Fixed(t time.Time) Clock {
	return fixedClock{at: t.UTC()}
}

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

func (c fixedClock) Today() time.Time {
	return time.Date(c.at.Year(), c.at.Month(), c.at.Day(), 0, 0, 0, 0, time.UTC)
}
