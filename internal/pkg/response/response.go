package response

import (
	"errors"
	"net/http"
	"strings"

	"mentorship/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// CustomError is used by middleware that aborts the chain itself.
func CustomError(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
}

// FromError writes the envelope for a service error. Unknown errors are
// recorded on the gin context so RequestLogger picks them up.
func FromError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperr.KindInternal {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
		return
	}

	status := apperr.HTTPStatus(appErr.Kind)
	code := strings.ToUpper(appErr.Code)
	if len(appErr.Details) > 0 {
		ErrorWithDetails(c, status, code, appErr.Message, appErr.Details)
		return
	}
	Error(c, status, code, appErr.Message)
}

// InvalidBody is the standard reply for a request body that failed binding.
func InvalidBody(c *gin.Context, err error) {
	ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
}
