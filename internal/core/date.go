package core

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component, normalized to UTC.
type Date struct {
	time.Time
}

var ErrInvalidDate = errors.New("invalid date")

// NewDate builds a Date from its parts. Out-of-range values are normalized
// the way time.Date normalizes them, so day 0 of month m is the last day of
// month m-1 and month 13 rolls into the next year.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO 8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Today returns the current calendar date in the local time zone.
func Today() Date {
	y, m, d := time.Now().Date()
	return NewDate(y, m, d)
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// YearMonth returns the (year, month) pair the date falls in.
func (d Date) YearMonth() (int, time.Month) {
	return d.Year(), d.Month()
}

// InMonth reports whether the date falls within the given calendar month.
func (d Date) InMonth(year int, month time.Month) bool {
	return d.Year() == year && d.Month() == month
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
