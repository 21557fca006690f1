package period

import (
	"testing"
	"time"
)

func TestMonth(t *testing.T) {
	t.Run("covers_whole_month", func(t *testing.T) {
		w := Month(2026, time.February)

		if !w.Start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected start: %s", w.Start)
		}
		if !w.Contains(time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)) {
			t.Error("expected last second of month inside window")
		}
		if w.Contains(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
			t.Error("expected first instant of next month outside window")
		}
	})

	t.Run("leap_february", func(t *testing.T) {
		w := Month(2028, time.February)
		if !w.Contains(time.Date(2028, 2, 29, 12, 0, 0, 0, time.UTC)) {
			t.Error("expected Feb 29 inside leap-year window")
		}
	})
}

func TestContains(t *testing.T) {
	w := Month(2026, time.January)

	if !w.Contains(w.Start) {
		t.Error("start should be inclusive")
	}
	if !w.Contains(w.End) {
		t.Error("end should be inclusive")
	}
	if w.Contains(w.Start.Add(-time.Nanosecond)) {
		t.Error("instant before start should be excluded")
	}
}

func TestOverlaps(t *testing.T) {
	jan := Month(2026, time.January)
	feb := Month(2026, time.February)

	t.Run("adjacent_months_do_not_overlap", func(t *testing.T) {
		if jan.Overlaps(feb) {
			t.Error("january should not overlap february")
		}
	})

	t.Run("spanning_window_overlaps_both", func(t *testing.T) {
		trip := Window{
			Start: time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
		}
		if !trip.Overlaps(jan) || !trip.Overlaps(feb) {
			t.Error("spanning window should overlap both months")
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		trip := Window{
			Start: time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
		}
		if jan.Overlaps(trip) != trip.Overlaps(jan) {
			t.Error("overlap should be symmetric")
		}
	})
}

func TestSameMonth(t *testing.T) {
	a := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	if !SameMonth(a, b) {
		t.Error("same month and year should match")
	}
	if SameMonth(a, c) {
		t.Error("same month in a different year should not match")
	}
}

func TestDaysIn(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2028, time.February, 29},
		{2026, time.April, 30},
	}
	for _, tc := range cases {
		if got := DaysIn(tc.year, tc.month); got != tc.want {
			t.Errorf("DaysIn(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestWholeMonthsBetween(t *testing.T) {
	t.Run("exact_months", func(t *testing.T) {
		from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
		if got := WholeMonthsBetween(from, to); got != 5 {
			t.Errorf("expected 5, got %d", got)
		}
	})

	t.Run("partial_month_rounds_down", func(t *testing.T) {
		from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
		if got := WholeMonthsBetween(from, to); got != 4 {
			t.Errorf("expected 4, got %d", got)
		}
	})

	t.Run("past_deadline", func(t *testing.T) {
		from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		if got := WholeMonthsBetween(from, to); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})
}

func TestWholeWeeksBetween(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := WholeWeeksBetween(from, from.AddDate(0, 0, 20)); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := WholeWeeksBetween(from, from.AddDate(0, 0, 21)); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := WholeWeeksBetween(from, from); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)); got != "2026-03" {
		t.Errorf("expected 2026-03, got %s", got)
	}
}

func TestLabel(t *testing.T) {
	if got := Label(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)); got != "January 2026" {
		t.Errorf("expected January 2026, got %s", got)
	}
}
