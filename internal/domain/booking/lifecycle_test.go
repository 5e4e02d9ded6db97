package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mentorID   = int64(1)
	learnerID  = int64(2)
	strangerID = int64(3)
)

func sessionAt(start time.Time, status Status) *Session {
	return &Session{
		ID:        10,
		MentorID:  mentorID,
		LearnerID: learnerID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Duration:  60,
		Status:    status,
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	}
	all := []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCheckTransition_GuardOrder(t *testing.T) {
	start := time.Date(2030, 1, 14, 10, 0, 0, 0, time.UTC)
	now := start.Add(-48 * time.Hour)

	_, err := checkTransition(sessionAt(start, StatusCompleted), strangerID, StatusCancelled, now, 24*time.Hour)
	assert.ErrorIs(t, err, ErrNotParty, "party check runs before legality")

	_, err = checkTransition(sessionAt(start, StatusCompleted), learnerID, StatusConfirmed, now, 24*time.Hour)
	assert.ErrorIs(t, err, ErrInvalidTransition, "legality runs before role")

	_, err = checkTransition(sessionAt(start, StatusPending), learnerID, StatusConfirmed, now, 24*time.Hour)
	assert.ErrorIs(t, err, ErrMentorOnly)

	_, err = checkTransition(sessionAt(start, StatusConfirmed), learnerID, StatusCompleted, start.Add(2*time.Hour), 24*time.Hour)
	assert.ErrorIs(t, err, ErrMentorOnly, "role runs before timing")
}

func TestCheckTransition_CancellationWindow(t *testing.T) {
	start := time.Date(2030, 1, 14, 10, 0, 0, 0, time.UTC)
	sess := sessionAt(start, StatusConfirmed)

	_, err := checkTransition(sess, learnerID, StatusCancelled, start.Add(-(23*time.Hour + 59*time.Minute)), 24*time.Hour)
	assert.ErrorIs(t, err, ErrCancellationWindow)

	_, err = checkTransition(sess, learnerID, StatusCancelled, start.Add(-24*time.Hour), 24*time.Hour)
	assert.ErrorIs(t, err, ErrCancellationWindow, "exactly at the window is too late")

	party, err := checkTransition(sess, learnerID, StatusCancelled, start.Add(-(24*time.Hour + time.Minute)), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, PartyLearner, party)

	party, err = checkTransition(sess, mentorID, StatusCancelled, start.Add(-25*time.Hour), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, PartyMentor, party)
}

func TestCheckTransition_CompletionAndNoShow(t *testing.T) {
	start := time.Date(2030, 1, 14, 10, 0, 0, 0, time.UTC)
	sess := sessionAt(start, StatusConfirmed)

	_, err := checkTransition(sess, mentorID, StatusCompleted, sess.EndTime.Add(-time.Second), 24*time.Hour)
	assert.ErrorIs(t, err, ErrSessionNotEnded)
	_, err = checkTransition(sess, mentorID, StatusCompleted, sess.EndTime, 24*time.Hour)
	assert.NoError(t, err)

	_, err = checkTransition(sess, mentorID, StatusNoShow, start.Add(-time.Minute), 24*time.Hour)
	assert.ErrorIs(t, err, ErrSessionNotStarted)
	_, err = checkTransition(sess, mentorID, StatusNoShow, start, 24*time.Hour)
	assert.NoError(t, err)
}

func TestApplyTransition_Cancel(t *testing.T) {
	start := time.Date(2030, 1, 14, 10, 0, 0, 0, time.UTC)
	now := start.Add(-48 * time.Hour)
	sess := sessionAt(start, StatusPending)

	applyTransition(sess, PartyLearner, StatusCancelled, "conflict at work", now)

	assert.Equal(t, StatusCancelled, sess.Status)
	require.NotNil(t, sess.CancelledBy)
	assert.Equal(t, PartyLearner, *sess.CancelledBy)
	assert.Equal(t, "conflict at work", sess.CancellationReason)
	require.NotNil(t, sess.CancelledAt)
	assert.True(t, now.Equal(*sess.CancelledAt))
}

func TestPrice(t *testing.T) {
	assert.Equal(t, 60.0, Price(60, 60))
	assert.Equal(t, 30.0, Price(60, 30))
	assert.Equal(t, 12.5, Price(50, 15))
	assert.Equal(t, 33.33, Price(40, 50))
}
