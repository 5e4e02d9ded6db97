package availability

type SlotInput struct {
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
}

type DateInput struct {
	Date      string      `json:"date" binding:"required"`
	TimeSlots []SlotInput `json:"time_slots" binding:"dive"`
}

type SetAvailabilityRequest struct {
	Dates      []DateInput     `json:"dates" binding:"dive"`
	Recurrence *RecurrenceRule `json:"recurrence"`
}

type AddDateRequest struct {
	Date      string      `json:"date" binding:"required"`
	TimeSlots []SlotInput `json:"time_slots" binding:"required,min=1,dive"`
}

type UpdateSlotRequest struct {
	IsBooked  *bool  `json:"is_booked" binding:"required"`
	SessionID *int64 `json:"session_id"`
}

type WindowInput struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
	Recurring *bool  `json:"recurring"`
}

type ManageWindowsRequest struct {
	Windows []WindowInput `json:"windows" binding:"dive"`
}

// SearchQuery drives findAvailableMentors. StartTime and EndTime are
// optional HH:MM bounds.
type SearchQuery struct {
	Date      string
	StartTime string
	EndTime   string
	Skills    []string
}
