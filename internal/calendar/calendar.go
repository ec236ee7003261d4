// Package calendar computes month boundaries, month-to-month navigation and
// the default entry date for new expenses. All functions are pure; the
// current date is injected where it matters.
package calendar

import (
	"time"

	"outlay/internal/core"
)

// Label carries the display names for a month.
type Label struct {
	Name      string `json:"name"`       // "January"
	ShortName string `json:"short_name"` // "Jan"
	Year      int    `json:"year"`
}

// MonthRange returns the first and last calendar day of the month, both
// inclusive. Day 0 of the following month is the last day of this one;
// time.Date carries the December→January year boundary.
func MonthRange(year int, month time.Month) (start, end core.Date) {
	start = core.NewDate(year, month, 1)
	end = core.NewDate(year, month+1, 0)
	return start, end
}

// Previous shifts one month back, rolling the year when needed.
func Previous(year int, month time.Month) (int, time.Month) {
	d := core.NewDate(year, month-1, 1)
	return d.Year(), d.Month()
}

// Next shifts one month forward, rolling the year when needed.
func Next(year int, month time.Month) (int, time.Month) {
	d := core.NewDate(year, month+1, 1)
	return d.Year(), d.Month()
}

// MonthLabel returns the month's long and short display names with the year.
func MonthLabel(year int, month time.Month) Label {
	return Label{
		Name:      month.String(),
		ShortName: core.NewDate(year, month, 1).Format("Jan"),
		Year:      year,
	}
}

// DefaultEntryDateAt returns today when today falls inside the given month,
// and the month's first day otherwise. New entries default into the month
// being viewed.
func DefaultEntryDateAt(year int, month time.Month, today core.Date) core.Date {
	if today.InMonth(year, month) {
		return today
	}
	return core.NewDate(year, month, 1)
}

// DefaultEntryDate is DefaultEntryDateAt evaluated against the real clock.
func DefaultEntryDate(year int, month time.Month) core.Date {
	return DefaultEntryDateAt(year, month, core.Today())
}
