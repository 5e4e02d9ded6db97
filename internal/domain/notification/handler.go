package notification

import (
	"log"
	"net/http"

	"mentorship/internal/pkg/request"
	"mentorship/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

// List: GET /notifications?unread=true&page=&limit=
func (h *Handler) List(c *gin.Context) {
	userID, _ := request.Caller(c)
	page, limit := request.Page(c)

	items, total, unread, err := h.service.List(c.Request.Context(), userID, c.Query("unread") == "true", page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ListResponse{
		Items:       items,
		Total:       total,
		UnreadCount: unread,
		Page:        page,
		Limit:       limit,
	})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID, _ := request.Caller(c)
	unread, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, UnreadCountResponse{UnreadCount: unread})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	userID, _ := request.Caller(c)
	if err := h.service.MarkAsRead(c.Request.Context(), id, userID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_read": true})
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	userID, _ := request.Caller(c)
	n, err := h.service.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, MarkAllResponse{Updated: n})
}

// Stream: GET /ws/notifications. Browsers pass the token as ?access_token=.
func (h *Handler) Stream(c *gin.Context) {
	userID, _ := request.Caller(c)
	if err := h.hub.Upgrade(c.Writer, c.Request, userID); err != nil {
		log.Printf("notification_ws_upgrade_failed user_id=%d err=%v", userID, err)
	}
}
