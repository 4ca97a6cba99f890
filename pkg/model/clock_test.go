package model

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	valid := []string{"2025-01-01", "2024-02-29", "1999-12-31"}
	for _, s := range valid {
		if _, err := ParseDate(s); err != nil {
			t.Errorf("ParseDate(%q): unexpected error: %v", s, err)
		}
	}

	invalid := []string{"", "2025-1-1", "01-01-2025", "2025-13-01", "2025-02-30", "2025-01-01T00:00:00Z", "tomorrow"}
	for _, s := range invalid {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q): expected error, got nil", s)
		}
	}
}

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		in   string
		want ClockTime
	}{
		{"08:00", "08:00:00"},
		{"08:00:00", "08:00:00"},
		{"20:30", "20:30:00"},
		{"23:59:59", "23:59:59"},
		{"00:00", "00:00:00"},
	}
	for _, c := range cases {
		got, err := ParseClockTime(c.in)
		if err != nil {
			t.Errorf("ParseClockTime(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClockTime(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	invalid := []string{"", "24:00", "8:00", "12:60", "12:00:60", "noon", "12-00-00"}
	for _, s := range invalid {
		if _, err := ParseClockTime(s); err == nil {
			t.Errorf("ParseClockTime(%q): expected error, got nil", s)
		}
	}
}

func TestClockTimeOrdering(t *testing.T) {
	a := ClockTime("08:00:00")
	b := ClockTime("08:30:00")

	if !a.Before(b) {
		t.Error("08:00 should be before 08:30")
	}
	if b.Before(a) {
		t.Error("08:30 should not be before 08:00")
	}
	if a.Before(a) {
		t.Error("a time is not before itself")
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 ClockTime
		want           bool
	}{
		{"identical", "10:00:00", "12:00:00", "10:00:00", "12:00:00", true},
		{"partial overlap", "10:00:00", "12:00:00", "11:00:00", "13:00:00", true},
		{"contained", "10:00:00", "12:00:00", "10:30:00", "11:00:00", true},
		{"touching end is free", "10:00:00", "12:00:00", "12:00:00", "12:30:00", false},
		{"touching start is free", "12:00:00", "12:30:00", "10:00:00", "12:00:00", false},
		{"disjoint", "08:00:00", "09:00:00", "14:00:00", "15:00:00", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Overlaps(c.s1, c.e1, c.s2, c.e2); got != c.want {
				t.Errorf("Overlaps(%s,%s,%s,%s) = %v, want %v", c.s1, c.e1, c.s2, c.e2, got, c.want)
			}
			// The predicate is symmetric.
			if got := Overlaps(c.s2, c.e2, c.s1, c.e1); got != c.want {
				t.Errorf("Overlaps is not symmetric for %s", c.name)
			}
		})
	}
}

func TestBookingActive(t *testing.T) {
	for _, status := range []string{StatusPending, StatusConfirmed, StatusRejected} {
		b := &Booking{Status: status}
		if !b.Active() {
			t.Errorf("status %q should be active", status)
		}
	}

	cancelled := &Booking{Status: StatusCancelled}
	if cancelled.Active() {
		t.Error("cancelled booking should not be active")
	}
}

func TestDateAndClockOf(t *testing.T) {
	instant := time.Date(2025, 3, 14, 9, 15, 26, 0, time.Local)

	if got := DateOf(instant); got != "2025-03-14" {
		t.Errorf("DateOf = %q, want 2025-03-14", got)
	}
	if got := ClockOf(instant); got != "09:15:26" {
		t.Errorf("ClockOf = %q, want 09:15:26", got)
	}
}
