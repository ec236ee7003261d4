package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12", 1200, true},
		{"12.5", 1250, true},
		{"0.01", 1, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseDecimalToCents(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseDecimalToCents(%q): expected error", tc.in)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1250, "12.50"},
		{9, "0.09"},
		{0, "0.00"},
		{-1234, "-12.34"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := (Money{Cents: 6249}).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "62.49" {
		t.Fatalf("marshal: got %s", b)
	}

	var m Money
	if err := m.UnmarshalJSON([]byte("40.00")); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if m.Cents != 4000 {
		t.Fatalf("unmarshal number: got %d cents", m.Cents)
	}
	if err := m.UnmarshalJSON([]byte(`"9.99"`)); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if m.Cents != 999 {
		t.Fatalf("unmarshal string: got %d cents", m.Cents)
	}
}
