// Package hhmm handles 24-hour "HH:MM" wall-clock strings.
package hhmm

import (
	"fmt"
	"time"
)

// EndOfDay is accepted as an end time only.
const EndOfDay = "24:00"

const minutesPerDay = 24 * 60

// Parse returns minutes since midnight. "24:00" parses to 1440.
func Parse(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, ok1 := twoDigits(s[0], s[1])
	m, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	return h*60 + m, nil
}

// Valid reports whether s parses.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Format renders minutes since midnight as HH:MM.
func Format(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Of returns the wall-clock minutes of t in its own location.
func Of(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Range parses a start/end pair and requires start < end.
func Range(start, end string) (int, int, error) {
	s, err := Parse(start)
	if err != nil {
		return 0, 0, err
	}
	if s >= minutesPerDay {
		return 0, 0, fmt.Errorf("invalid start time %q", start)
	}
	e, err := Parse(end)
	if err != nil {
		return 0, 0, err
	}
	if e <= s {
		return 0, 0, fmt.Errorf("end time %q must be after start time %q", end, start)
	}
	return s, e, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}
