package app

import (
	"fmt"

	"mentorship/internal/domain/account"
	"mentorship/internal/domain/availability"
	"mentorship/internal/domain/booking"
	"mentorship/internal/domain/notification"
	"mentorship/internal/domain/review"

	"gorm.io/gorm"
)

// Models lists every table the service owns, in dependency order.
func Models() []any {
	return []any{
		&account.Account{},
		&account.MentorProfile{},
		&account.ActiveSession{},
		&availability.Window{},
		&availability.Date{},
		&availability.Slot{},
		&booking.Session{},
		&review.Review{},
		&notification.Notification{},
	}
}

func Migrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
	}
	return nil
}
