package notification

import "github.com/gin-gonic/gin"

// RegisterRoutes expects an authenticated group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/notifications")
	{
		g.GET("", h.List)
		g.GET("/unread-count", h.UnreadCount)
		g.PATCH("/:id/read", h.MarkAsRead)
		g.POST("/read-all", h.MarkAllAsRead)
	}
}

// RegisterStreamRoute mounts the websocket endpoint behind its own auth,
// which is the only place a query-string token is accepted.
func (h *Handler) RegisterStreamRoute(v1 *gin.RouterGroup, auth gin.HandlerFunc) {
	v1.GET("/ws/notifications", auth, h.Stream)
}
