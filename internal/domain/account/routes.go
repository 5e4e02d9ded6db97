package account

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	v1.GET("/mentors", h.ListMentors)
	v1.GET("/mentors/:id", h.GetMentor)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup, mentorOnly gin.HandlerFunc) {
	protected.GET("/users/me", h.GetMe)
	protected.PUT("/users/me/mentor-profile", mentorOnly, h.UpdateMentorProfile)
	protected.GET("/users/me/active-sessions", mentorOnly, h.GetMyActiveSessions)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.PATCH("/mentors/:id/verify", h.SetMentorVerified)
	admin.PATCH("/accounts/:id/active", h.SetActive)
}
