package account

import "mentorship/internal/pkg/apperr"

var (
	ErrNotFound           = apperr.New(apperr.KindNotFound, "account_not_found", "Account not found")
	ErrMentorNotFound     = apperr.New(apperr.KindNotFound, "mentor_not_found", "Mentor not found")
	ErrEmailTaken         = apperr.New(apperr.KindConflict, "email_taken", "Email is already registered")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "invalid_credentials", "Invalid email or password")
	ErrAccountDisabled    = apperr.New(apperr.KindForbidden, "account_disabled", "Account is disabled")
	ErrInvalidKind        = apperr.New(apperr.KindValidation, "invalid_kind", "Kind must be learner or mentor")
	ErrInvalidTimeZone    = apperr.New(apperr.KindValidation, "invalid_time_zone", "Unknown IANA time zone")
	ErrInvalidProfile     = apperr.New(apperr.KindValidation, "invalid_profile", "Invalid mentor profile")
)
