// Package clock provides the injectable time sources: the current local
// date for the daily reset and a once-per-second tick for timers.
package clock

import "time"

const dayLayout = "2006-01-02"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Func adapts a function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// System is the wall clock in local time.
var System Clock = Func(time.Now)

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}

// DayKey returns the local calendar-day key (YYYY-MM-DD) for t.
func DayKey(t time.Time) string {
	return t.Local().Format(dayLayout)
}

// Today returns the day key for c's current time.
func Today(c Clock) string {
	return DayKey(c.Now())
}

