package review

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/mentors/:id/reviews", h.ListForMentor)
}

// RegisterAdminRoutes expects a group already restricted to admins.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	g := admin.Group("/reviews")
	{
		g.GET("", h.ListForAdmin)
		g.PATCH("/:id/approve", h.Approve)
		g.PATCH("/:id/reject", h.Reject)
		g.PATCH("/:id/hide", h.Hide)
		g.PATCH("/:id/show", h.Show)
		g.DELETE("/:id", h.Delete)
	}
}
