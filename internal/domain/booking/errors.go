package booking

import "mentorship/internal/pkg/apperr"

var (
	ErrInvalidRequest      = apperr.New(apperr.KindValidation, "invalid_request", "Invalid session request")
	ErrInvalidDuration     = apperr.New(apperr.KindValidation, "invalid_duration", "Duration must be between 15 and 480 minutes")
	ErrStartNotInFuture    = apperr.New(apperr.KindValidation, "start_time_not_in_future", "Start time must be in the future")
	ErrInvalidFeedback     = apperr.New(apperr.KindValidation, "invalid_feedback", "Feedback needs a rating between 1 and 5")
	ErrMentorNotFound      = apperr.New(apperr.KindNotFound, "mentor_not_found", "Mentor not found")
	ErrLearnerNotFound     = apperr.New(apperr.KindNotFound, "learner_not_found", "Learner not found")
	ErrSessionNotFound     = apperr.New(apperr.KindNotFound, "session_not_found", "Session not found")
	ErrMentorUnavailable   = apperr.New(apperr.KindUnavailable, "mentor_unavailable", "Mentor is not verified or not active")
	ErrOutsideAvailability = apperr.New(apperr.KindUnavailable, "outside_availability", "Requested time is outside the mentor's availability")
	ErrConflict            = apperr.New(apperr.KindConflict, "session_conflict", "Mentor already has a session at this time")
	ErrBusy                = apperr.New(apperr.KindConflict, "mentor_busy", "Mentor is being booked by another request, retry")
	ErrNotParty            = apperr.New(apperr.KindForbidden, "not_session_party", "You are not a party to this session")
	ErrMentorOnly          = apperr.New(apperr.KindForbidden, "mentor_only", "Only the mentor can do this")
	ErrInvalidTransition   = apperr.New(apperr.KindState, "invalid_status_transition", "Status transition is not allowed")
	ErrCancellationWindow  = apperr.New(apperr.KindState, "cancellation_window_passed", "Sessions can only be cancelled before the cancellation window")
	ErrSessionNotEnded     = apperr.New(apperr.KindState, "session_not_ended", "Session has not ended yet")
	ErrSessionNotStarted   = apperr.New(apperr.KindState, "session_not_started", "Session has not started yet")
	ErrNotCompleted        = apperr.New(apperr.KindState, "session_not_completed", "Feedback is only accepted for completed sessions")
	ErrFeedbackExists      = apperr.New(apperr.KindState, "feedback_already_submitted", "Feedback was already submitted")
	ErrNotConfirmed        = apperr.New(apperr.KindState, "session_not_confirmed", "Meeting links are only available for confirmed sessions")
)
