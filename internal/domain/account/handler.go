package account

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

// Register creates a learner or mentor account and returns an access token.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// GetMyActiveSessions: GET /users/me/active-sessions (mentor)
func (h *Handler) GetMyActiveSessions(c *gin.Context) {
	userID, _ := request.Caller(c)
	ids, err := h.service.ActiveSessions(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ActiveSessionsResponse{MentorID: userID, SessionIDs: ids})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID, _ := request.Caller(c)
	a, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) UpdateMentorProfile(c *gin.Context) {
	var req UpdateMentorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	userID, _ := request.Caller(c)
	a, err := h.service.UpdateMentorProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) ListMentors(c *gin.Context) {
	page, limit := request.Page(c)
	items, total, err := h.service.ListMentors(c.Request.Context(), request.CSV(c, "skills"), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, MentorListResponse{Items: items, Total: total, Page: page, Limit: limit})
}

func (h *Handler) GetMentor(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	a, err := h.service.GetMentor(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// SetMentorVerified is an admin action: PATCH /admin/mentors/:id/verify {"value": true}.
func (h *Handler) SetMentorVerified(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	var req SetFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	a, err := h.service.SetMentorVerified(c.Request.Context(), id, *req.Value)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) SetActive(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	var req SetFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	a, err := h.service.SetActive(c.Request.Context(), id, *req.Value)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}
