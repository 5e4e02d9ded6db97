package notification

import "time"

type Type string

const (
	TypeSessionRequested Type = "session_requested"
	TypeSessionConfirmed Type = "session_confirmed"
	TypeSessionCancelled Type = "session_cancelled"
	TypeSessionCompleted Type = "session_completed"
	TypeSessionNoShow    Type = "session_no_show"
	TypeFeedbackReceived Type = "feedback_received"
	TypeMeetingLinkReady Type = "meeting_link_ready"
)

// Event is what producers hand to Notify. Delivery is best effort.
type Event struct {
	UserID  int64
	Type    Type
	Title   string
	Message string
	Data    map[string]any
}

type Notification struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	UserID    int64          `gorm:"not null;index:idx_notifications_user_unread" json:"user_id"`
	Type      Type           `gorm:"size:32;not null" json:"type"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Message   string         `gorm:"type:text" json:"message,omitempty"`
	Data      map[string]any `gorm:"serializer:json" json:"data,omitempty"`
	IsRead    bool           `gorm:"not null;index:idx_notifications_user_unread" json:"is_read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
