package account

import "time"

type Kind string

const (
	KindLearner Kind = "learner"
	KindMentor  Kind = "mentor"
	KindAdmin   Kind = "admin"
)

func (k Kind) Valid() bool {
	switch k {
	case KindLearner, KindMentor, KindAdmin:
		return true
	}
	return false
}

// Account is one row per person regardless of role. Mentor is set only for
// KindMentor.
type Account struct {
	ID           int64          `gorm:"primaryKey" json:"id"`
	Kind         Kind           `gorm:"size:16;not null;index" json:"kind"`
	Email        string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	TimeZone     string         `gorm:"size:64;not null" json:"time_zone"`
	IsActive     bool           `gorm:"not null" json:"is_active"`
	Mentor       *MentorProfile `gorm:"foreignKey:AccountID" json:"mentor,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Bookable reports whether learners may book this account right now.
func (a *Account) Bookable() bool {
	return a.Kind == KindMentor && a.IsActive && a.Mentor != nil && a.Mentor.IsVerified
}

type MentorProfile struct {
	AccountID         int64     `gorm:"primaryKey;autoIncrement:false" json:"account_id"`
	Headline          string    `gorm:"size:255" json:"headline"`
	Bio               string    `gorm:"type:text" json:"bio"`
	Skills            []string  `gorm:"serializer:json" json:"skills"`
	HourlyRate        float64   `gorm:"not null" json:"hourly_rate"`
	IsVerified        bool      `gorm:"not null" json:"is_verified"`
	SessionsCompleted int       `gorm:"not null" json:"sessions_completed"`
	AverageRating     float64   `gorm:"not null" json:"average_rating"`
	TotalRatings      int       `gorm:"not null" json:"total_ratings"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (MentorProfile) TableName() string { return "mentor_profiles" }

// HasAnySkill reports whether the profile lists at least one of skills,
// case-insensitively. An empty filter matches every profile.
func (p *MentorProfile) HasAnySkill(skills []string) bool {
	if len(skills) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(p.Skills))
	for _, s := range p.Skills {
		have[normalizeSkill(s)] = struct{}{}
	}
	for _, s := range skills {
		if _, ok := have[normalizeSkill(s)]; ok {
			return true
		}
	}
	return false
}

// ActiveSession lists the mentor's sessions that are not yet terminal.
type ActiveSession struct {
	MentorID  int64 `gorm:"primaryKey;autoIncrement:false"`
	SessionID int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (ActiveSession) TableName() string { return "mentor_active_sessions" }
