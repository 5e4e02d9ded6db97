package availability

import "mentorship/internal/pkg/apperr"

var (
	ErrMentorNotFound  = apperr.New(apperr.KindNotFound, "mentor_not_found", "Mentor not found")
	ErrDateNotFound    = apperr.New(apperr.KindNotFound, "date_not_found", "Availability date not found")
	ErrSlotNotFound    = apperr.New(apperr.KindNotFound, "slot_not_found", "Time slot not found")
	ErrSessionNotFound = apperr.New(apperr.KindNotFound, "session_not_found", "Session not found")
	ErrInvalidInput    = apperr.New(apperr.KindValidation, "invalid_availability", "Invalid availability payload")
	ErrInvalidDate     = apperr.New(apperr.KindValidation, "invalid_date", "Dates must use YYYY-MM-DD")
	ErrInvalidSlot     = apperr.New(apperr.KindValidation, "invalid_time_slot", "Time slots need HH:MM start before end")
	ErrInvalidWindow   = apperr.New(apperr.KindValidation, "invalid_window", "Windows need day_of_week 0-6 and HH:MM start before end")
	ErrInvalidRule     = apperr.New(apperr.KindValidation, "invalid_recurrence", "Invalid recurrence rule")
	ErrSlotMismatch    = apperr.New(apperr.KindValidation, "slot_session_mismatch", "Session does not match this slot")
)
