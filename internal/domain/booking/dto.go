package booking

import (
	"time"

	"mentorship/internal/domain/review"
)

type BookSessionRequest struct {
	MentorID    int64     `json:"mentor_id" binding:"required,gt=0"`
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description" binding:"max=2000"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	Duration    int       `json:"duration_minutes" binding:"required"`
	MeetingType string    `json:"meeting_type"`

	// Optional dated slot to mark once the session exists.
	DateID *int64 `json:"date_id" binding:"omitempty,gt=0"`
	SlotID *int64 `json:"slot_id" binding:"omitempty,gt=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=1000"`
}

type FeedbackRequest struct {
	Content string `json:"content" binding:"max=2000"`
	Rating  int    `json:"rating" binding:"required"`
}

type BookSessionResponse struct {
	Session    *Session `json:"session"`
	SlotMarked *bool    `json:"slot_marked,omitempty"`
}

type FeedbackResponse struct {
	Session *Session          `json:"session"`
	Rating  *review.Aggregate `json:"mentor_rating,omitempty"`
}

type SessionListResponse struct {
	Items []Session `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}
