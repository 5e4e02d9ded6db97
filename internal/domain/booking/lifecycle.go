package booking

import "time"

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// checkTransition runs the guards for actorID moving s to the target status,
// in order: party, legality, role, then timing.
func checkTransition(s *Session, actorID int64, to Status, now time.Time, window time.Duration) (Party, error) {
	party, ok := s.PartyOf(actorID)
	if !ok {
		return "", ErrNotParty
	}
	if !CanTransition(s.Status, to) {
		return "", ErrInvalidTransition
	}
	if to != StatusCancelled && party != PartyMentor {
		return "", ErrMentorOnly
	}

	switch to {
	case StatusCancelled:
		if !now.Add(window).Before(s.StartTime) {
			return "", ErrCancellationWindow
		}
	case StatusCompleted:
		if now.Before(s.EndTime) {
			return "", ErrSessionNotEnded
		}
	case StatusNoShow:
		if now.Before(s.StartTime) {
			return "", ErrSessionNotStarted
		}
	}
	return party, nil
}

// applyTransition mutates s. Guards must already have passed.
func applyTransition(s *Session, party Party, to Status, reason string, now time.Time) {
	s.Status = to
	switch to {
	case StatusConfirmed:
		s.ConfirmedAt = &now
	case StatusCancelled:
		s.CancelledBy = &party
		s.CancellationReason = reason
		s.CancelledAt = &now
	case StatusCompleted:
		s.CompletedAt = &now
	}
}
