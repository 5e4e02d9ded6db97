package middleware

import (
	"net/http"

	"mentorship/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		roleStr, _ := role.(string)
		if _, ok := allowed[roleStr]; !ok {
			response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole("admin")
}

// MentorOnly middleware requires mentor role
func MentorOnly() gin.HandlerFunc {
	return RequireRole("mentor")
}

// LearnerOnly middleware requires learner role
func LearnerOnly() gin.HandlerFunc {
	return RequireRole("learner")
}
