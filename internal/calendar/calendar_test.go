package calendar

import (
	"testing"
	"time"

	"outlay/internal/core"
)

func TestMonthRange(t *testing.T) {
	cases := []struct {
		year       int
		month      time.Month
		start, end string
	}{
		{2024, time.March, "2024-03-01", "2024-03-31"},
		{2024, time.February, "2024-02-01", "2024-02-29"}, // leap year
		{2023, time.February, "2023-02-01", "2023-02-28"},
		{2023, time.December, "2023-12-01", "2023-12-31"},
		{2024, time.April, "2024-04-01", "2024-04-30"},
	}
	for _, tc := range cases {
		start, end := MonthRange(tc.year, tc.month)
		if start.String() != tc.start || end.String() != tc.end {
			t.Fatalf("MonthRange(%d, %s) = %s..%s, want %s..%s",
				tc.year, tc.month, start, end, tc.start, tc.end)
		}
	}
}

func TestMonthRangeInvariants(t *testing.T) {
	for year := 2020; year <= 2025; year++ {
		for m := time.January; m <= time.December; m++ {
			start, end := MonthRange(year, m)
			if start.After(end) {
				t.Fatalf("%d-%s: start after end", year, m)
			}
			if !start.InMonth(year, m) || !end.InMonth(year, m) {
				t.Fatalf("%d-%s: bounds leaked out of month: %s..%s", year, m, start, end)
			}
			if start.Day() != 1 {
				t.Fatalf("%d-%s: start day %d", year, m, start.Day())
			}
		}
	}
}

func TestPreviousNext(t *testing.T) {
	y, m := Next(2023, time.December)
	if y != 2024 || m != time.January {
		t.Fatalf("Next(2023, Dec) = %d-%s", y, m)
	}
	y, m = Previous(2024, time.January)
	if y != 2023 || m != time.December {
		t.Fatalf("Previous(2024, Jan) = %d-%s", y, m)
	}
	y, m = Next(2024, time.June)
	if y != 2024 || m != time.July {
		t.Fatalf("Next(2024, Jun) = %d-%s", y, m)
	}

	// A full year of Next then Previous lands back where it started.
	y, m = 2024, time.March
	for i := 0; i < 12; i++ {
		y, m = Next(y, m)
	}
	if y != 2025 || m != time.March {
		t.Fatalf("12x Next = %d-%s", y, m)
	}
	for i := 0; i < 12; i++ {
		y, m = Previous(y, m)
	}
	if y != 2024 || m != time.March {
		t.Fatalf("round trip = %d-%s", y, m)
	}
}

func TestMonthLabel(t *testing.T) {
	l := MonthLabel(2024, time.January)
	if l.Name != "January" || l.ShortName != "Jan" || l.Year != 2024 {
		t.Fatalf("unexpected label: %+v", l)
	}
}

func TestDefaultEntryDateAt(t *testing.T) {
	today := core.NewDate(2024, time.March, 17)

	// Viewing the current month: today.
	if got := DefaultEntryDateAt(2024, time.March, today); !got.Equal(today) {
		t.Fatalf("same month: got %s", got)
	}
	// Any other month: its first day.
	if got := DefaultEntryDateAt(2024, time.April, today); got.String() != "2024-04-01" {
		t.Fatalf("other month: got %s", got)
	}
	// Same month number, different year still counts as a different month.
	if got := DefaultEntryDateAt(2023, time.March, today); got.String() != "2023-03-01" {
		t.Fatalf("other year: got %s", got)
	}
}

func TestDefaultEntryDateCurrentMonth(t *testing.T) {
	today := core.Today()
	if got := DefaultEntryDate(today.Year(), today.Month()); !got.Equal(today) {
		t.Fatalf("current month default = %s, want %s", got, today)
	}
}
