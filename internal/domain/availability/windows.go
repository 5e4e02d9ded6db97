package availability

import (
	"time"

	"mentorship/internal/pkg/hhmm"
)

// Covers reports whether [start, end) sits entirely inside one weekly window
// on the weekday of start. Comparison is by UTC wall clock; an interval that
// crosses midnight is never covered, except one that ends exactly at 24:00.
func Covers(windows []Window, start, end time.Time) bool {
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return false
	}

	startMin := hhmm.Of(start)
	endMin := hhmm.Of(end)
	if end.Second() != 0 || end.Nanosecond() != 0 {
		endMin++
	}

	if !sameDate(start, end) {
		midnight := time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, time.UTC)
		if !end.Equal(midnight) {
			return false
		}
		endMin = 24 * 60
	}

	day := int(start.Weekday())
	for _, w := range windows {
		if w.DayOfWeek != day {
			continue
		}
		ws, we, err := hhmm.Range(w.StartTime, w.EndTime)
		if err != nil {
			continue
		}
		if ws <= startMin && endMin <= we {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func validateWindow(w WindowInput) error {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return ErrInvalidWindow
	}
	if _, _, err := hhmm.Range(w.StartTime, w.EndTime); err != nil {
		return ErrInvalidWindow
	}
	return nil
}

func validateSlot(s SlotInput) error {
	if _, _, err := hhmm.Range(s.StartTime, s.EndTime); err != nil {
		return ErrInvalidSlot
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// slotSpans reports whether slot starts no later than from and ends no
// earlier than to. A negative bound is ignored.
func slotSpans(s Slot, from, to int) bool {
	ss, se, err := hhmm.Range(s.StartTime, s.EndTime)
	if err != nil {
		return false
	}
	if from >= 0 && ss > from {
		return false
	}
	if to >= 0 && se < to {
		return false
	}
	return true
}
