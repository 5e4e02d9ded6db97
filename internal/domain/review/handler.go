package review

import (
	"context"
	"net/http"
	"strconv"

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

func (h *Handler) ListForMentor(c *gin.Context) {
	mentorID, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	page, limit := request.Page(c)

	items, total, err := h.service.ListForMentor(c.Request.Context(), mentorID, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ReviewListResponse{Items: items, Total: total, Page: page, Limit: limit})
}

// ListForAdmin: GET /admin/reviews?status=pending&mentor_id=3
func (h *Handler) ListForAdmin(c *gin.Context) {
	var mentorID int64
	if raw := c.Query("mentor_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid mentor_id")
			return
		}
		mentorID = v
	}
	page, limit := request.Page(c)

	items, total, err := h.service.ListForAdmin(c.Request.Context(), mentorID, Status(c.Query("status")), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ReviewListResponse{Items: items, Total: total, Page: page, Limit: limit})
}

func (h *Handler) Approve(c *gin.Context) {
	h.moderate(c, h.service.Approve)
}

func (h *Handler) Reject(c *gin.Context) {
	h.moderate(c, h.service.Reject)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	agg, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ModerationResponse{Rating: agg})
}

func (h *Handler) Hide(c *gin.Context) {
	h.setHidden(c, true)
}

func (h *Handler) Show(c *gin.Context) {
	h.setHidden(c, false)
}

func (h *Handler) moderate(c *gin.Context, action func(context.Context, int64, int64) (*Review, *Aggregate, error)) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	adminID, _ := request.Caller(c)

	rv, agg, err := action(c.Request.Context(), id, adminID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ModerationResponse{Review: rv, Rating: agg})
}

func (h *Handler) setHidden(c *gin.Context, hidden bool) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	rv, err := h.service.SetHidden(c.Request.Context(), id, hidden)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}
