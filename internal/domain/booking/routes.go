package booking

import "github.com/gin-gonic/gin"

// RegisterRoutes expects an authenticated group. Booking is learner-only;
// the remaining checks are per session.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, learnerOnly gin.HandlerFunc) {
	g := protected.Group("/sessions")
	{
		g.POST("", learnerOnly, h.BookSession)
		g.GET("", h.ListSessions)
		g.GET("/:id", h.GetSession)
		g.PUT("/:id/status", h.UpdateStatus)
		g.POST("/:id/feedback", h.SubmitFeedback)
		g.POST("/:id/meeting-link", h.GenerateMeetingLink)
	}
}
