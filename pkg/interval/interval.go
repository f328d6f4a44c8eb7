// Package interval supplies the half-open calendar-day windows every
// date-scoped query shares. A day is [midnight, next midnight) in the
// time's own location.
package interval

import "time"

// Day returns the half-open window covering t's calendar day.
func Day(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// DaysPast returns the window reaching n calendar days back through
// today, so it spans n+1 days. DaysPast(0) is today's window.
func DaysPast(n int) (start, end time.Time) {
	return Prior(n, time.Now())
}

// Prior returns the window reaching numDays calendar days back through
// from's day, spanning numDays+1 days in total.
func Prior(numDays int, from time.Time) (start, end time.Time) {
	dayStart, dayEnd := Day(from)
	return dayStart.AddDate(0, 0, -numDays), dayEnd
}

// Contains reports whether t falls inside the half-open window.
func Contains(start, end, t time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
