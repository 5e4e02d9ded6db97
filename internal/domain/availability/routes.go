package availability

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/availability/mentors", h.SearchMentors)
	v1.GET("/mentors/:id/availability", h.GetMentorAvailability)
	v1.GET("/mentors/:id/windows", h.GetMentorWindows)
}

// RegisterMentorRoutes expects a group already restricted to mentors.
func (h *Handler) RegisterMentorRoutes(mentor *gin.RouterGroup) {
	g := mentor.Group("/availability")
	{
		g.GET("", h.GetMyAvailability)
		g.PUT("", h.SetAvailability)
		g.POST("/dates", h.AddDate)
		g.DELETE("/dates/:dateId", h.RemoveDate)
		g.PATCH("/dates/:dateId/slots/:slotId", h.UpdateSlotStatus)
		g.GET("/windows", h.GetMyWindows)
		g.PUT("/windows", h.ManageWindows)
	}
}
