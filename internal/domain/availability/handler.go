package availability

import (
	"net/http"

	"mentorship/internal/pkg/request"
	"mentorship/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetMentorAvailability is the public dated view: GET /mentors/:id/availability?from=&to=
func (h *Handler) GetMentorAvailability(c *gin.Context) {
	mentorID, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	h.writeDates(c, mentorID)
}

func (h *Handler) GetMentorWindows(c *gin.Context) {
	mentorID, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	windows, err := h.service.ListWindows(c.Request.Context(), mentorID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, windows)
}

func (h *Handler) GetMyAvailability(c *gin.Context) {
	mentorID, _ := request.Caller(c)
	h.writeDates(c, mentorID)
}

func (h *Handler) SetAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	mentorID, _ := request.Caller(c)
	dates, err := h.service.SetAvailability(c.Request.Context(), mentorID, req.Dates, req.Recurrence)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dates)
}

func (h *Handler) AddDate(c *gin.Context) {
	var req AddDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	mentorID, _ := request.Caller(c)
	d, err := h.service.AddDate(c.Request.Context(), mentorID, req.Date, req.TimeSlots)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, d)
}

func (h *Handler) RemoveDate(c *gin.Context) {
	dateID, ok := request.ParamID(c, "dateId")
	if !ok {
		return
	}

	mentorID, _ := request.Caller(c)
	if err := h.service.RemoveDate(c.Request.Context(), mentorID, dateID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) UpdateSlotStatus(c *gin.Context) {
	dateID, ok := request.ParamID(c, "dateId")
	if !ok {
		return
	}
	slotID, ok := request.ParamID(c, "slotId")
	if !ok {
		return
	}
	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	mentorID, _ := request.Caller(c)
	slot, err := h.service.UpdateSlotStatus(c.Request.Context(), mentorID, dateID, slotID, *req.IsBooked, req.SessionID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, slot)
}

func (h *Handler) GetMyWindows(c *gin.Context) {
	mentorID, _ := request.Caller(c)
	windows, err := h.service.ListWindows(c.Request.Context(), mentorID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, windows)
}

func (h *Handler) ManageWindows(c *gin.Context) {
	var req ManageWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	mentorID, _ := request.Caller(c)
	windows, err := h.service.ManageAvailability(c.Request.Context(), mentorID, req.Windows)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, windows)
}

// SearchMentors: GET /availability/mentors?date=2030-01-07&start_time=10:00&end_time=11:00&skills=go,sql
func (h *Handler) SearchMentors(c *gin.Context) {
	matches, err := h.service.FindAvailableMentors(c.Request.Context(), SearchQuery{
		Date:      c.Query("date"),
		StartTime: c.Query("start_time"),
		EndTime:   c.Query("end_time"),
		Skills:    request.CSV(c, "skills"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, matches)
}

func (h *Handler) writeDates(c *gin.Context, mentorID int64) {
	dates, err := h.service.GetAvailability(c.Request.Context(), mentorID, c.Query("from"), c.Query("to"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dates)
}
