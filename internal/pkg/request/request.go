// Package request holds small gin helpers shared by the feature handlers.
package request

import (
	"net/http"
	"strconv"
	"strings"

	"mentorship/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParamID parses a positive int64 path parameter. On failure it writes a 400
// and returns false.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

// Page reads ?page= and ?limit= with defaults and clamping.
func Page(c *gin.Context) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}

	limit = DefaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = min(v, MaxLimit)
	}
	return page, limit
}

// CSV splits a comma-separated query value, dropping blanks.
func CSV(c *gin.Context, name string) []string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Caller returns the authenticated user id and role set by JWTAuth.
func Caller(c *gin.Context) (int64, string) {
	return c.GetInt64("user_id"), c.GetString("role")
}
