package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func loggedRouter(handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/x", handler)
	return router
}

func TestRequestLogger_RecoversPanic(t *testing.T) {
	buf := captureLog(t)
	router := loggedRouter(func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "kaboom")
	assert.Contains(t, buf.String(), "http_panic")
	assert.Contains(t, buf.String(), "status=500")
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	buf := captureLog(t)
	router := loggedRouter(func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	id := w.Header().Get(RequestIDHeader)
	require.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())
	assert.Contains(t, buf.String(), "request_id="+id)
}

func TestRequestID_KeepsInboundHeader(t *testing.T) {
	captureLog(t)
	router := loggedRouter(func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "trace-abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "trace-abc", w.Header().Get(RequestIDHeader))
}

func TestRequestLogger_RedactsAccessToken(t *testing.T) {
	buf := captureLog(t)
	router := loggedRouter(func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?page=2&access_token=secret.jwt.value", nil))

	out := buf.String()
	assert.NotContains(t, out, "secret.jwt.value")
	assert.Contains(t, out, "access_token=REDACTED")
	assert.Contains(t, out, "page=2")
}

func TestRedactQuery(t *testing.T) {
	assert.Equal(t, "", RedactQuery(""))
	assert.Equal(t, "status=pending", RedactQuery("status=pending"))
	assert.Equal(t, "access_token=REDACTED&role=mentor", RedactQuery("role=mentor&access_token=abc"))
	assert.Equal(t, "unparsable", RedactQuery("a=%zz&access_token=abc"))
}
