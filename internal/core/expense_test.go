package core

import (
	"testing"
	"time"
)

func TestDateParseAndFormat(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.March || d.Day() != 1 {
		t.Fatalf("unexpected parts: %v", d)
	}
	if got := d.String(); got != "2024-03-01" {
		t.Fatalf("format: got %q", got)
	}

	for _, s := range []string{"", "2024-3-1", "01-03-2024", "2024-13-01", "2024-02-30", "not a date"} {
		if _, err := ParseDate(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2023, time.December, 31)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2023-12-31"` {
		t.Fatalf("marshal: got %s", b)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Amount:      Money{Cents: 1250},
		Category:    CategoryDining,
		Description: "lunch",
		Date:        NewDate(2024, time.March, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Description is optional.
	noDesc := good
	noDesc.Description = ""
	if err := noDesc.Validate(); err != nil {
		t.Fatalf("empty description should be valid, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(*Expense)
		want error
	}{
		{"zero amount", func(e *Expense) { e.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(e *Expense) { e.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"missing category", func(e *Expense) { e.Category = "" }, ErrMissingCategory},
		{"blank category", func(e *Expense) { e.Category = "   " }, ErrMissingCategory},
		{"zero date", func(e *Expense) { e.Date = Date{} }, ErrInvalidDate},
		{"long description", func(e *Expense) {
			for i := 0; i < 201; i++ {
				e.Description += "x"
			}
		}, ErrDescriptionTooLong},
	}
	for _, tc := range cases {
		e := good
		tc.mut(&e)
		if err := e.Validate(); err != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in    string
		want  Category
		known bool
	}{
		{"Dining", CategoryDining, true},
		{"dining", CategoryDining, true},
		{" RENT ", CategoryRent, true},
		{"Other", CategoryOther, true},
		{"Subscriptions", Category("Subscriptions"), false},
	}
	for _, tc := range cases {
		got := ParseCategory(tc.in)
		if got != tc.want {
			t.Fatalf("ParseCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if got.Known() != tc.known {
			t.Fatalf("ParseCategory(%q).Known() = %v, want %v", tc.in, got.Known(), tc.known)
		}
	}
}

func TestExpenseEqualIgnoresStoreFields(t *testing.T) {
	a := Expense{
		Amount:      Money{Cents: 999},
		Category:    CategoryHealth,
		Description: "pharmacy",
		Date:        NewDate(2024, time.March, 15),
	}
	b := a
	b.ID = "42"
	b.CreatedAt = time.Now()
	if !a.Equal(b) {
		t.Fatalf("expected equality ignoring id/created_at")
	}
	b.Amount = Money{Cents: 1000}
	if a.Equal(b) {
		t.Fatalf("expected inequality on amount change")
	}
}
