package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mentorship/internal/config"
	"mentorship/internal/database"
	"mentorship/internal/domain/account"
	"mentorship/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	jwt    *jwt.Service
	now    time.Time
}

func setupServer(t *testing.T) (*testServer, *account.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.ConnectWithOptions(":memory:", database.Options{Silent: true})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	s := &testServer{
		t:   t,
		jwt: jwt.New("test_secret_key_32_characters_min", time.Hour),
		now: time.Date(2030, 1, 6, 12, 0, 0, 0, time.UTC),
	}
	a, err := New(Deps{
		DB: db,
		Config: &config.Config{
			AppEnv:                "test",
			BookingMaxRetries:     3,
			CancellationWindow:    24 * time.Hour,
			MeetingBaseURL:        "https://meet.test",
			NotificationRetention: time.Hour,
		},
		JWT: s.jwt,
		Now: func() time.Time { return s.now },
	})
	require.NoError(t, err)
	s.router = a.Router
	return s, account.NewRepository(db)
}

func (s *testServer) do(method, path, token string, body any) (int, apiResponse) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func (s *testServer) register(body map[string]any) (int64, string) {
	s.t.Helper()
	code, resp := s.do(http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(s.t, http.StatusCreated, code, string(resp.Data))

	var auth struct {
		AccessToken string `json:"access_token"`
		Account     struct {
			ID int64 `json:"id"`
		} `json:"account"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Data, &auth))
	return auth.Account.ID, auth.AccessToken
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	s, _ := setupServer(t)
	code, resp := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s, _ := setupServer(t)
	code, resp := s.do(http.MethodGet, "/api/v1/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "AUTH_HEADER_MISSING", resp.Error.Code)
}

func TestQueryTokenOnlyOpensWebSocket(t *testing.T) {
	s, _ := setupServer(t)
	var logs bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(prev) })

	_, token := s.register(map[string]any{
		"email": "learner@example.com", "password": "password123", "name": "Learner",
		"kind": "learner", "time_zone": "UTC",
	})

	code, resp := s.do(http.MethodGet, "/api/v1/sessions?access_token="+token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "AUTH_HEADER_MISSING", resp.Error.Code)

	log.SetOutput(prev)
	assert.NotContains(t, logs.String(), token)
	assert.Contains(t, logs.String(), "access_token=REDACTED")
	assert.Contains(t, logs.String(), "path=/api/v1/sessions status=401")

	srv := httptest.NewServer(s.router)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/notifications"

	_, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	conn, res, err := websocket.DefaultDialer.Dial(wsURL+"?access_token="+token, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSwitchingProtocols, res.StatusCode)
	require.NoError(t, conn.Close())
}

func TestBookingFlow(t *testing.T) {
	s, accounts := setupServer(t)
	ctx := context.Background()

	admin := &account.Account{Kind: account.KindAdmin, Email: "admin@example.com", PasswordHash: "x", Name: "Admin", TimeZone: "UTC", IsActive: true}
	require.NoError(t, accounts.Create(ctx, admin))
	adminToken, err := s.jwt.GenerateToken(admin.ID, string(account.KindAdmin))
	require.NoError(t, err)

	mentorID, mentorToken := s.register(map[string]any{
		"email": "mentor@example.com", "password": "password123", "name": "Mentor",
		"kind": "mentor", "time_zone": "UTC", "hourly_rate": 60, "skills": []string{"Go"},
	})
	_, learnerToken := s.register(map[string]any{
		"email": "learner@example.com", "password": "password123", "name": "Learner",
		"kind": "learner", "time_zone": "UTC",
	})

	code, _ := s.do(http.MethodPut, "/api/v1/availability/windows", mentorToken, map[string]any{
		"windows": []map[string]any{{"day_of_week": 1, "start_time": "09:00", "end_time": "17:00"}},
	})
	require.Equal(t, http.StatusOK, code)

	book := func(start string) (int, apiResponse) {
		return s.do(http.MethodPost, "/api/v1/sessions", learnerToken, map[string]any{
			"mentor_id": mentorID, "title": "Career chat", "start_time": start, "duration_minutes": 60,
		})
	}

	code, resp := book("2030-01-07T14:00:00Z")
	assert.Equal(t, http.StatusUnprocessableEntity, code, "unverified mentor")
	assert.Equal(t, "MENTOR_UNAVAILABLE", resp.Error.Code)

	code, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/mentors/%d/verify", mentorID), adminToken, map[string]any{"value": true})
	require.Equal(t, http.StatusOK, code)

	code, resp = book("2030-01-07T14:00:00Z")
	require.Equal(t, http.StatusCreated, code, string(resp.Data))
	created := decode[struct {
		Session struct {
			ID     int64   `json:"id"`
			Status string  `json:"status"`
			Price  float64 `json:"price"`
		} `json:"session"`
	}](t, resp.Data)
	assert.Equal(t, "pending", created.Session.Status)
	assert.Equal(t, 60.0, created.Session.Price)
	sessionPath := fmt.Sprintf("/api/v1/sessions/%d", created.Session.ID)

	code, resp = book("2030-01-07T14:30:00Z")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "SESSION_CONFLICT", resp.Error.Code)

	code, resp = book("2030-01-07T15:00:00Z")
	require.Equal(t, http.StatusCreated, code)
	second := decode[struct {
		Session struct {
			ID int64 `json:"id"`
		} `json:"session"`
	}](t, resp.Data)

	code, resp = book("2030-01-07T08:00:00Z")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "OUTSIDE_AVAILABILITY", resp.Error.Code)

	code, _ = s.do(http.MethodPost, "/api/v1/sessions", mentorToken, map[string]any{
		"mentor_id": mentorID, "title": "x", "start_time": "2030-01-07T16:00:00Z", "duration_minutes": 30,
	})
	assert.Equal(t, http.StatusForbidden, code, "mentors cannot book")

	code, _ = s.do(http.MethodPut, sessionPath+"/status", mentorToken, map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusOK, code)

	code, resp = s.do(http.MethodPost, sessionPath+"/meeting-link", mentorToken, nil)
	require.Equal(t, http.StatusOK, code)
	linked := decode[struct {
		MeetingLink string `json:"meeting_link"`
	}](t, resp.Data)
	assert.Contains(t, linked.MeetingLink, "https://meet.test/")

	s.now = time.Date(2030, 1, 7, 15, 30, 0, 0, time.UTC)
	code, _ = s.do(http.MethodPut, sessionPath+"/status", mentorToken, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, code)

	code, resp = s.do(http.MethodGet, "/api/v1/users/me/active-sessions", mentorToken, nil)
	require.Equal(t, http.StatusOK, code)
	active := decode[struct {
		SessionIDs []int64 `json:"session_ids"`
	}](t, resp.Data)
	assert.Equal(t, []int64{second.Session.ID}, active.SessionIDs, "completed session leaves the active list")

	code, _ = s.do(http.MethodGet, "/api/v1/users/me/active-sessions", learnerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = s.do(http.MethodPost, sessionPath+"/feedback", learnerToken, map[string]any{"content": "Helpful", "rating": 5})
	require.Equal(t, http.StatusOK, code)
	fb := decode[struct {
		Rating struct {
			AverageRating float64 `json:"average_rating"`
			TotalRatings  int     `json:"total_ratings"`
		} `json:"mentor_rating"`
	}](t, resp.Data)
	assert.Equal(t, 5.0, fb.Rating.AverageRating)
	assert.Equal(t, 1, fb.Rating.TotalRatings)

	code, resp = s.do(http.MethodGet, fmt.Sprintf("/api/v1/mentors/%d", mentorID), "", nil)
	require.Equal(t, http.StatusOK, code)
	profile := decode[struct {
		Mentor struct {
			SessionsCompleted int `json:"sessions_completed"`
			TotalRatings      int `json:"total_ratings"`
		} `json:"mentor"`
	}](t, resp.Data)
	assert.Equal(t, 1, profile.Mentor.SessionsCompleted)
	assert.Equal(t, 1, profile.Mentor.TotalRatings)

	code, resp = s.do(http.MethodGet, "/api/v1/admin/reviews?status=pending", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	reviews := decode[struct {
		Total int64 `json:"total"`
	}](t, resp.Data)
	assert.Equal(t, int64(1), reviews.Total)

	code, resp = s.do(http.MethodGet, "/api/v1/notifications/unread-count", mentorToken, nil)
	require.Equal(t, http.StatusOK, code)
	unread := decode[struct {
		UnreadCount int64 `json:"unread_count"`
	}](t, resp.Data)
	assert.Equal(t, int64(3), unread.UnreadCount, "two bookings and one feedback")

	code, resp = s.do(http.MethodGet, "/api/v1/sessions?role=learner&timeframe=past", learnerToken, nil)
	require.Equal(t, http.StatusOK, code)
	past := decode[struct {
		Total int64 `json:"total"`
	}](t, resp.Data)
	assert.Equal(t, int64(1), past.Total)
}
