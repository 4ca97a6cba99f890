package model

import (
	"fmt"
	"regexp"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)
)

// Date is a calendar date with no time component, formatted YYYY-MM-DD.
type Date string

func ParseDate(s string) (Date, error) {
	if !dateRegex.MatchString(s) {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

func (d Date) Valid() bool {
	_, err := ParseDate(string(d))
	return err == nil
}

func (d Date) String() string {
	return string(d)
}

// DateOf truncates an instant to its local calendar date.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// ClockTime is a wall-clock time of day formatted HH:MM:SS (24-hour, local,
// no zone offset). Zero-padded strings compare correctly with <, which keeps
// both Mongo range filters and in-process comparisons on the same rule.
type ClockTime string

// ParseClockTime accepts HH:MM or HH:MM:SS and normalizes to HH:MM:SS.
func ParseClockTime(s string) (ClockTime, error) {
	if !clockRegex.MatchString(s) {
		return "", fmt.Errorf("invalid time %q, expected HH:MM:SS", s)
	}
	if len(s) == 5 {
		s += ":00"
	}
	return ClockTime(s), nil
}

func (t ClockTime) Valid() bool {
	return len(t) == 8 && clockRegex.MatchString(string(t))
}

func (t ClockTime) String() string {
	return string(t)
}

func (t ClockTime) Before(other ClockTime) bool {
	return t < other
}

// Short returns the HH:MM form, used for slot identifiers.
func (t ClockTime) Short() string {
	if len(t) < 5 {
		return string(t)
	}
	return string(t[:5])
}

// HourMinute splits the time into its hour and minute components.
func (t ClockTime) HourMinute() (int, int) {
	parsed, err := time.Parse(ClockLayout, string(t))
	if err != nil {
		return 0, 0
	}
	return parsed.Hour(), parsed.Minute()
}

// Add shifts the time of day forward by d, wrapping at midnight.
func (t ClockTime) Add(d time.Duration) ClockTime {
	parsed, err := time.Parse(ClockLayout, string(t))
	if err != nil {
		return t
	}
	return ClockTime(parsed.Add(d).Format(ClockLayout))
}

// ClockOf truncates an instant to its local wall-clock time of day.
func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Format(ClockLayout))
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching boundaries (e1 == s2) do not conflict.
func Overlaps(s1, e1, s2, e2 ClockTime) bool {
	return s1 < e2 && s2 < e1
}
