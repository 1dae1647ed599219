package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/TambayanDev/TambayanBot/pkg/models"
)

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func TestKeepAlive(t *testing.T) {
	s := NewServer(DefaultRateLimit)
	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); body != "Bot is alive!" {
		t.Errorf("body = %q", body)
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	s := NewServer(DefaultRateLimit)

	rec := get(t, s, "/missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /missing = %d, want 404", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec = httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST / = %d, want 405", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	s := NewServer(RateLimitConfig{Window: time.Hour, MaxRequests: 3})
	for i := 0; i < 3; i++ {
		if rec := get(t, s, "/"); rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i+1, rec.Code)
		}
	}
	if rec := get(t, s, "/"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("4th request = %d, want 429", rec.Code)
	}
}

type botStub struct{}

func (botStub) IsReady() bool         { return true }
func (botStub) Uptime() time.Duration { return 90 * time.Second }

type afkStub []models.AFKRecord

func (a afkStub) AFKUsers() []models.AFKRecord { return a }

type modlogStub struct {
	events []models.ModerationEvent
	err    error
	target string
	limit  int64
}

func (m *modlogStub) Recent(_ context.Context, target string, limit int64) ([]models.ModerationEvent, error) {
	m.target, m.limit = target, limit
	return m.events, m.err
}

func TestStatus(t *testing.T) {
	s := NewServer(DefaultRateLimit)
	SetupAPIRoutes(s, APIDeps{
		Bot:   botStub{},
		AFK:   afkStub{{UserID: "u1"}, {UserID: "u2"}},
		Sinks: []string{"mqtt"},
	})

	rec := get(t, s, "/api/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Bot struct {
			IsOnline      bool  `json:"isOnline"`
			UptimeSeconds int64 `json:"uptimeSeconds"`
		} `json:"bot"`
		Database struct {
			Status string `json:"status"`
		} `json:"database"`
		AFKCount int `json:"afkCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Bot.IsOnline || body.Bot.UptimeSeconds != 90 {
		t.Errorf("bot = %+v", body.Bot)
	}
	if body.Database.Status != "disabled" {
		t.Errorf("database status = %q", body.Database.Status)
	}
	if body.AFKCount != 2 {
		t.Errorf("afkCount = %d", body.AFKCount)
	}
}

func TestHealth(t *testing.T) {
	s := NewServer(DefaultRateLimit)
	SetupAPIRoutes(s, APIDeps{})
	rec := get(t, s, "/api/health")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("GET /api/health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestModlogs(t *testing.T) {
	stub := &modlogStub{events: []models.ModerationEvent{{ID: "e1", Kind: models.EventBan}}}
	s := NewServer(DefaultRateLimit)
	SetupAPIRoutes(s, APIDeps{ModLogs: stub})

	rec := get(t, s, "/api/modlogs?user=u9&limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if stub.target != "u9" || stub.limit != 5 {
		t.Errorf("Recent(%q, %d)", stub.target, stub.limit)
	}
	if !strings.Contains(rec.Body.String(), `"e1"`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	if rec := get(t, s, "/api/modlogs?limit=0"); rec.Code != http.StatusBadRequest {
		t.Errorf("limit=0 = %d, want 400", rec.Code)
	}

	stub.err = errors.New("database offline")
	if rec := get(t, s, "/api/modlogs"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("offline = %d, want 503", rec.Code)
	}
}

func TestModlogsWithoutStorage(t *testing.T) {
	s := NewServer(DefaultRateLimit)
	SetupAPIRoutes(s, APIDeps{})
	if rec := get(t, s, "/api/modlogs"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
