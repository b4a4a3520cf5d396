package dateutil

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func NextDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}

// IsOnOrBeforeDay reports whether t falls on the same calendar day as ref or
// any earlier day, in ref's location.
func IsOnOrBeforeDay(t, ref time.Time) bool {
	return !BeginningOfDay(t.In(ref.Location())).After(BeginningOfDay(ref))
}

// DaysBetween returns the absolute number of whole calendar days separating
// the days of a and b.
func DaysBetween(a, b time.Time) int {
	days := int(BeginningOfDay(b).Sub(BeginningOfDay(a)).Hours() / 24)
	if days < 0 {
		return -days
	}

	return days
}
