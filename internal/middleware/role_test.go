package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mentorship/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	router := protectedRouter(jwtService, RequireRole("mentor", "admin"))

	cases := []struct {
		role string
		want int
	}{
		{"mentor", http.StatusOK},
		{"admin", http.StatusOK},
		{"learner", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			token, _ := jwtService.GenerateToken(1, tc.role)
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
