package review

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Review struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	MentorID    int64      `gorm:"not null;index" json:"mentor_id"`
	ReviewerID  int64      `gorm:"not null;index" json:"reviewer_id"`
	SessionID   *int64     `gorm:"uniqueIndex" json:"session_id,omitempty"`
	Rating      int        `gorm:"not null" json:"rating"`
	Comment     string     `gorm:"type:text" json:"comment"`
	Status      Status     `gorm:"size:16;not null;index" json:"status"`
	IsHidden    bool       `gorm:"not null" json:"is_hidden"`
	ModeratedBy *int64     `json:"moderated_by,omitempty"`
	ModeratedAt *time.Time `json:"moderated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }

func (r *Review) IsApproved() bool {
	return r.Status == StatusApproved
}

// Feedback is a learner's session rating handed to the aggregator.
type Feedback struct {
	MentorID   int64
	ReviewerID int64
	SessionID  int64
	Rating     int
	Comment    string
}
