package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2030, 1, 7, hour, minute, 0, 0, time.UTC)
}

func live(id int64, start, end time.Time, status Status) Session {
	return Session{ID: id, StartTime: start, EndTime: end, Status: status}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"inside", at(14, 0), at(15, 0), at(14, 30), at(14, 45), true},
		{"straddles start", at(14, 0), at(15, 0), at(13, 30), at(14, 30), true},
		{"straddles end", at(14, 0), at(15, 0), at(14, 30), at(15, 30), true},
		{"covers", at(14, 0), at(15, 0), at(13, 0), at(16, 0), true},
		{"abuts after", at(14, 0), at(15, 0), at(15, 0), at(16, 0), false},
		{"abuts before", at(14, 0), at(15, 0), at(13, 0), at(14, 0), false},
		{"disjoint", at(14, 0), at(15, 0), at(9, 0), at(10, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestDetectConflict(t *testing.T) {
	existing := []Session{
		live(1, at(10, 0), at(11, 0), StatusCancelled),
		live(2, at(14, 0), at(15, 0), StatusPending),
		live(3, at(16, 0), at(17, 0), StatusCompleted),
	}

	clash := DetectConflict(existing, at(14, 30), at(15, 30))
	if assert.NotNil(t, clash) {
		assert.Equal(t, int64(2), clash.ID)
	}

	assert.Nil(t, DetectConflict(existing, at(15, 0), at(16, 0)), "touching a live session is allowed")
	assert.Nil(t, DetectConflict(existing, at(10, 0), at(11, 0)), "cancelled sessions do not block")
	assert.Nil(t, DetectConflict(existing, at(16, 0), at(17, 0)), "completed sessions do not block")
	assert.Nil(t, DetectConflict(nil, at(9, 0), at(10, 0)))
}
