package booking

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no-show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// Live statuses block the mentor's calendar.
func (s Status) Live() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

var liveStatuses = []Status{StatusPending, StatusConfirmed}

type Party string

const (
	PartyMentor  Party = "mentor"
	PartyLearner Party = "learner"
)

type MeetingType string

const (
	MeetingVideo MeetingType = "video"
	MeetingAudio MeetingType = "audio"
	MeetingChat  MeetingType = "chat"
)

func (m MeetingType) Valid() bool {
	return m == MeetingVideo || m == MeetingAudio || m == MeetingChat
}

type Feedback struct {
	Content     string    `json:"content"`
	Rating      int       `json:"rating"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Session times are stored in UTC. Sessions are never deleted.
type Session struct {
	ID                 int64       `gorm:"primaryKey" json:"id"`
	MentorID           int64       `gorm:"not null;index:idx_sessions_mentor_status" json:"mentor_id"`
	LearnerID          int64       `gorm:"not null;index" json:"learner_id"`
	Title              string      `gorm:"size:255;not null" json:"title"`
	Description        string      `gorm:"type:text" json:"description"`
	MeetingType        MeetingType `gorm:"size:16;not null" json:"meeting_type"`
	StartTime          time.Time   `gorm:"not null;index" json:"start_time"`
	EndTime            time.Time   `gorm:"not null" json:"end_time"`
	Duration           int         `gorm:"not null" json:"duration_minutes"`
	Status             Status      `gorm:"size:16;not null;index:idx_sessions_mentor_status" json:"status"`
	Price              float64     `gorm:"not null" json:"price"`
	MentorTimeZone     string      `gorm:"size:64" json:"mentor_time_zone"`
	LearnerTimeZone    string      `gorm:"size:64" json:"learner_time_zone"`
	CancelledBy        *Party      `gorm:"size:16" json:"cancelled_by,omitempty"`
	CancellationReason string      `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time  `json:"cancelled_at,omitempty"`
	ConfirmedAt        *time.Time  `json:"confirmed_at,omitempty"`
	CompletedAt        *time.Time  `json:"completed_at,omitempty"`
	MentorFeedback     *Feedback   `gorm:"serializer:json" json:"mentor_feedback,omitempty"`
	LearnerFeedback    *Feedback   `gorm:"serializer:json" json:"learner_feedback,omitempty"`
	MeetingLink        string      `gorm:"size:512" json:"meeting_link,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

func (Session) TableName() string { return "sessions" }

// PartyOf reports which side of the session userID is on.
func (s *Session) PartyOf(userID int64) (Party, bool) {
	switch userID {
	case s.MentorID:
		return PartyMentor, true
	case s.LearnerID:
		return PartyLearner, true
	}
	return "", false
}

// Counterpart returns the other party's account id.
func (s *Session) Counterpart(p Party) int64 {
	if p == PartyMentor {
		return s.LearnerID
	}
	return s.MentorID
}
