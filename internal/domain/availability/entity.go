package availability

import "time"

// DateLayout is the calendar-date form used for dated availability. Dates are
// compared as strings, without a time zone.
const DateLayout = "2006-01-02"

// Window is a weekly bookable interval. DayOfWeek follows time.Weekday
// (0 = Sunday).
type Window struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	MentorID  int64     `gorm:"not null;index" json:"mentor_id"`
	DayOfWeek int       `gorm:"not null" json:"day_of_week"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
	Recurring bool      `gorm:"not null" json:"recurring"`
	CreatedAt time.Time `json:"created_at"`
}

func (Window) TableName() string { return "availability_windows" }

// Date groups the slots a mentor offers on one calendar date.
type Date struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	MentorID  int64     `gorm:"not null;uniqueIndex:idx_availability_mentor_date" json:"mentor_id"`
	Date      string    `gorm:"size:10;not null;uniqueIndex:idx_availability_mentor_date" json:"date"`
	Slots     []Slot    `gorm:"foreignKey:DateID" json:"time_slots"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Date) TableName() string { return "availability_dates" }

// Slot is one bookable interval on a Date. IsBooked as returned by the
// service is derived: a slot pointing at a session only counts as booked
// while that session is pending or confirmed.
type Slot struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	DateID    int64     `gorm:"not null;index" json:"date_id"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
	IsBooked  bool      `gorm:"not null" json:"is_booked"`
	SessionID *int64    `gorm:"index" json:"session_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Slot) TableName() string { return "availability_slots" }

// SessionRef is the slice of a session the store needs to keep slot flags
// honest.
type SessionRef struct {
	ID        int64
	MentorID  int64
	StartTime time.Time
	EndTime   time.Time
	Live      bool
}

// MentorMatch is one search hit.
type MentorMatch struct {
	MentorID   int64    `json:"mentor_id"`
	Name       string   `json:"name"`
	Headline   string   `json:"headline"`
	Skills     []string `json:"skills"`
	HourlyRate float64  `json:"hourly_rate"`
	Rating     float64  `json:"average_rating"`
	TimeZone   string   `json:"time_zone"`
	Date       string   `json:"date"`
	DateID     int64    `json:"date_id"`
	Slots      []Slot   `json:"time_slots"`
}
