package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WhackALawyer_Go/internal/archive"
	"github.com/osse101/WhackALawyer_Go/internal/game"
	"github.com/osse101/WhackALawyer_Go/internal/handler"
	"github.com/osse101/WhackALawyer_Go/internal/scheduler"
	"github.com/osse101/WhackALawyer_Go/internal/session"
	"github.com/osse101/WhackALawyer_Go/internal/sse"
	"github.com/osse101/WhackALawyer_Go/internal/taunt"
)

const testAdminKey = "admin-secret"

func newTestRouter(t *testing.T, adminKey string) http.Handler {
	t.Helper()
	return NewRouter(Options{Port: 0, AdminAPIKey: adminKey}, newTestDeps(t))
}

func newTestDeps(t *testing.T) Deps {
	t.Helper()

	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	manager := session.NewManager(session.ManagerConfig{
		MaxSessions: 10,
		TTL:         time.Hour,
		Round:       game.Config{RoundDuration: 5},
		Seed:        1,
	}, taunt.StaticProvider{}, scheduler.NewManual(), hub, nil)
	t.Cleanup(manager.Close)

	return Deps{
		Sessions:    manager,
		Hub:         hub,
		Leaderboard: archive.NewService(archive.NewMemoryRepository(10)),
		Taunts:      taunt.StaticProvider{},
	}
}

func serve(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	h := newTestRouter(t, "")

	tests := []struct {
		path   string
		status int
	}{
		{"/healthz", http.StatusOK},
		{"/readyz", http.StatusOK},
		{"/version", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/v1/archetypes", http.StatusOK},
		{"/api/v1/taunts", http.StatusOK},
		{"/api/v1/leaderboard", http.StatusOK},
		{"/api/v1/leaderboard?limit=500", http.StatusBadRequest},
		{"/api/v1/sessions/unknown", http.StatusNotFound},
		{"/api/v1/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(h, http.MethodGet, tt.path, "", nil)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	h := newTestRouter(t, "")

	rec := serve(h, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
}

func TestRouter_SessionLifecycle(t *testing.T) {
	h := newTestRouter(t, "")

	rec := serve(h, http.MethodPost, "/api/v1/sessions", `{"player_name":"alice"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created handler.CreateSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.SessionID)

	base := "/api/v1/sessions/" + created.SessionID

	rec = serve(h, http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodPost, base+"/start", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(h, http.MethodPost, base+"/miss", `{"x":1,"y":2}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(h, http.MethodPost, base+"/whack", `{"slot_id":42}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, http.MethodDelete, base, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AdminDisabledWithoutKey(t *testing.T) {
	h := newTestRouter(t, "")

	rec := serve(h, http.MethodGet, "/api/v1/admin/sessions", "", map[string]string{HeaderAPIKey: "anything"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AdminRequiresKey(t *testing.T) {
	h := newTestRouter(t, testAdminKey)

	rec := serve(h, http.MethodGet, "/api/v1/admin/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, http.MethodGet, "/api/v1/admin/sessions", "", map[string]string{HeaderAPIKey: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, http.MethodGet, "/api/v1/admin/sessions", "", map[string]string{HeaderAPIKey: testAdminKey})
	require.Equal(t, http.StatusOK, rec.Code)

	var stats handler.AdminStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 0, stats.ActiveSessions)

	rec = serve(h, http.MethodPost, "/api/v1/admin/taunts/refresh", "", map[string]string{HeaderAPIKey: testAdminKey})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Handler(t *testing.T) {
	s := NewServer(Options{Port: 8089}, Deps{
		Hub:         sse.NewHub(),
		Leaderboard: archive.NewService(archive.NewMemoryRepository(1)),
		Taunts:      taunt.StaticProvider{},
	})

	rec := serve(s.Handler(), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_StopEndsEventStreams(t *testing.T) {
	deps := newTestDeps(t)
	srv := NewServer(Options{AdminAPIKey: testAdminKey}, deps)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.httpServer.Serve(ln) }()

	req, err := http.NewRequest(http.MethodGet, "http://"+ln.Addr().String()+"/api/v1/admin/events", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderAPIKey, testAdminKey)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Eventually(t, func() bool { return deps.Hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	started := time.Now()
	require.NoError(t, srv.Stop(ctx))
	assert.Less(t, time.Since(started), 2*time.Second)
	assert.Zero(t, deps.Hub.ClientCount())
}
