package booking

import (
	"context"
	"log"
	"net/http"

	"mentorship/internal/domain/availability"
	"mentorship/internal/pkg/request"
	"mentorship/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// SlotMarker flags a dated slot as taken by a session.
type SlotMarker interface {
	UpdateSlotStatus(ctx context.Context, mentorID, dateID, slotID int64, isBooked bool, sessionID *int64) (*availability.Slot, error)
}

type Handler struct {
	service *Service
	slots   SlotMarker
}

func NewHandler(service *Service, slots SlotMarker) *Handler {
	return &Handler{service: service, slots: slots}
}

// BookSession: POST /sessions
func (h *Handler) BookSession(c *gin.Context) {
	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	learnerID, _ := request.Caller(c)
	sess, err := h.service.BookSession(c.Request.Context(), BookInput{
		LearnerID:   learnerID,
		MentorID:    req.MentorID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		Duration:    req.Duration,
		MeetingType: MeetingType(req.MeetingType),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp := BookSessionResponse{Session: sess}
	if req.DateID != nil && req.SlotID != nil && h.slots != nil {
		marked := true
		if _, err := h.slots.UpdateSlotStatus(c.Request.Context(), sess.MentorID, *req.DateID, *req.SlotID, true, &sess.ID); err != nil {
			log.Printf("slot_mark_failed session_id=%d date_id=%d slot_id=%d err=%v", sess.ID, *req.DateID, *req.SlotID, err)
			marked = false
		}
		resp.SlotMarked = &marked
	}
	response.Success(c, http.StatusCreated, resp)
}

// ListSessions: GET /sessions?role=&status=&timeframe=&page=&limit=
func (h *Handler) ListSessions(c *gin.Context) {
	userID, _ := request.Caller(c)
	page, limit := request.Page(c)

	items, total, err := h.service.ListSessions(c.Request.Context(), userID, ListQuery{
		Role:      Party(c.Query("role")),
		Status:    Status(c.Query("status")),
		Timeframe: Timeframe(c.Query("timeframe")),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, SessionListResponse{Items: items, Total: total, Page: page, Limit: limit})
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	userID, role := request.Caller(c)

	sess, err := h.service.GetSession(c.Request.Context(), id, userID, role)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sess)
}

// UpdateStatus: PUT /sessions/:id/status {status, reason?}
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	userID, _ := request.Caller(c)
	sess, err := h.service.Transition(c.Request.Context(), id, userID, Status(req.Status), req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sess)
}

func (h *Handler) SubmitFeedback(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	userID, _ := request.Caller(c)
	sess, agg, err := h.service.SubmitFeedback(c.Request.Context(), id, userID, req.Content, req.Rating)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, FeedbackResponse{Session: sess, Rating: agg})
}

func (h *Handler) GenerateMeetingLink(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	userID, _ := request.Caller(c)

	sess, err := h.service.GenerateMeetingLink(c.Request.Context(), id, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sess)
}
