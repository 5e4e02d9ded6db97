package middleware

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"mentorship/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLen = 128
	redacted        = "REDACTED"
)

// RequestID keeps the caller's X-Request-ID or mints a new one, stores it
// as request_id and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger writes one http_request line per request and turns panics
// into a 500 envelope.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Printf("http_panic request_id=%s method=%s path=%s panic=%q\n%s",
					c.GetString("request_id"), c.Request.Method, c.Request.URL.Path, fmt.Sprint(recovered), debug.Stack())
				response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
				c.Abort()
			}
			logRequest(c, time.Since(start))
		}()

		c.Next()
	}
}

func logRequest(c *gin.Context, latency time.Duration) {
	var b strings.Builder
	fmt.Fprintf(&b, "http_request request_id=%s method=%s path=%s status=%d latency=%s client_ip=%s",
		c.GetString("request_id"),
		c.Request.Method,
		c.Request.URL.Path,
		c.Writer.Status(),
		latency,
		c.ClientIP(),
	)
	if userID := c.GetInt64("user_id"); userID != 0 {
		fmt.Fprintf(&b, " caller_id=%d caller_role=%s", userID, c.GetString("role"))
	}
	if q := RedactQuery(c.Request.URL.RawQuery); q != "" {
		b.WriteString(" query=" + strconv.Quote(q))
	}
	if len(c.Errors) > 0 {
		b.WriteString(" errors=" + strconv.Quote(c.Errors.String()))
	}
	log.Print(b.String())
}

// RedactQuery masks the access token in a raw query string. A query that
// does not parse is dropped whole.
func RedactQuery(raw string) string {
	if raw == "" {
		return ""
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "unparsable"
	}
	if values.Has(QueryTokenParam) {
		values.Set(QueryTokenParam, redacted)
	}
	return values.Encode()
}
