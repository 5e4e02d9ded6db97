package notification

import "mentorship/internal/pkg/apperr"

var ErrNotFound = apperr.New(apperr.KindNotFound, "notification_not_found", "Notification not found")
