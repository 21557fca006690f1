// Package period computes calendar month boundaries and date-range overlap
// for windowed budget calculations. All functions are pure; callers pass
// explicit dates rather than reading the clock.
package period

import "time"

// Window is an inclusive date range, typically one calendar month.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Month returns the window covering an entire calendar month in UTC,
// from the first instant of day 1 to the last instant of the final day.
func Month(year int, month time.Month) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}

// Of returns the month window containing t.
func Of(t time.Time) Window {
	return Month(t.Year(), t.Month())
}

// Contains reports whether t falls inside the window, inclusive of both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Overlaps reports whether two windows share at least one instant.
func (w Window) Overlaps(o Window) bool {
	return !w.Start.After(o.End) && !o.Start.After(w.End)
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// DaysIn returns the number of days in the given calendar month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WholeMonthsBetween returns the number of whole calendar months from
// "from" to "to", counting month boundaries crossed. Returns zero when
// to is not after from.
func WholeMonthsBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// WholeWeeksBetween returns the number of whole 7-day weeks from
// "from" to "to". Returns zero when to is not after from.
func WholeWeeksBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / (24 * 7))
}

// MonthKey returns a stable "YYYY-MM" grouping key for t. Used when
// bucketing historical transactions by calendar month.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Label returns the human-readable month name for t, e.g. "January 2026".
// Used for cross-period settlement annotations.
func Label(t time.Time) string {
	return t.Format("January 2006")
}
