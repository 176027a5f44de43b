package domain

import "time"

// Clock abstracts wall-clock time so the engine never reads time.Now
// directly. Production code uses SystemClock; the simulator and tests
// supply fakes that fast-forward through synthetic days.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// DayKey returns the UTC calendar-date string ("2006-01-02") used for
// first-of-day gating and streak computation. Two activities share a day
// iff their DayKeys are equal.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
