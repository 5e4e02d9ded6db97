package middleware

import (
	"net/http"
	"strings"

	"mentorship/internal/pkg/jwt"
	"mentorship/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// QueryTokenParam carries the token on websocket upgrades, where browsers
// cannot set an Authorization header.
const QueryTokenParam = "access_token"

// JWTAuth validates the Authorization bearer token and stores user_id and
// role on the context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}
		authenticate(c, jwtService, token)
	}
}

// WebSocketAuth is JWTAuth for upgrade endpoints: a GET without an
// Authorization header may pass the token as ?access_token=.
func WebSocketAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" && c.Request.Method == http.MethodGet {
			if token := strings.TrimSpace(c.Query(QueryTokenParam)); token != "" {
				authenticate(c, jwtService, token)
				return
			}
		}
		token, ok := bearerToken(c)
		if !ok {
			return
		}
		authenticate(c, jwtService, token)
	}
}

func authenticate(c *gin.Context, jwtService *jwt.Service, token string) {
	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		c.Abort()
		return
	}

	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
	c.Next()
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.CustomError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
		c.Abort()
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		response.CustomError(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
		c.Abort()
		return "", false
	}

	return strings.TrimSpace(parts[1]), true
}
