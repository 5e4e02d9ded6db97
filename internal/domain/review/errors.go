package review

import "mentorship/internal/pkg/apperr"

var (
	ErrNotFound       = apperr.New(apperr.KindNotFound, "review_not_found", "Review not found")
	ErrMentorNotFound = apperr.New(apperr.KindNotFound, "mentor_not_found", "Mentor not found")
	ErrInvalidRating  = apperr.New(apperr.KindValidation, "invalid_rating", "Rating must be between 1 and 5")
	ErrInvalidStatus  = apperr.New(apperr.KindValidation, "invalid_status", "Status must be pending, approved or rejected")
	ErrBusy           = apperr.New(apperr.KindConflict, "mentor_busy", "Mentor is being updated by another request, retry")
)
