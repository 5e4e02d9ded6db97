package booking

import "time"

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Intervals that only touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DetectConflict returns the first live session overlapping [start, end),
// or nil.
func DetectConflict(existing []Session, start, end time.Time) *Session {
	for i := range existing {
		s := &existing[i]
		if !s.Status.Live() {
			continue
		}
		if Overlaps(s.StartTime, s.EndTime, start, end) {
			return s
		}
	}
	return nil
}
