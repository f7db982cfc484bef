package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"

	tests := []struct {
		name           string
		configuredKey  string
		providedKey    string
		expectedStatus int
	}{
		{"Valid API Key", apiKey, apiKey, http.StatusOK},
		{"Invalid API Key", apiKey, "wrong-key", http.StatusUnauthorized},
		{"Missing API Key", apiKey, "", http.StatusUnauthorized},
		{"No Key Configured", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AuthMiddleware(tt.configuredKey, nil, NewClientGuard())(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/sessions", nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_RecordsFailures(t *testing.T) {
	guard := NewClientGuard()
	h := AuthMiddleware("secret", nil, guard)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		req.Header.Set(HeaderAPIKey, "nope")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	requests, failed := guard.counts("10.0.0.7")
	assert.Equal(t, 0, requests)
	assert.Equal(t, 3, failed)
}

func TestRateLimitMiddleware(t *testing.T) {
	guard := NewClientGuardWithLimit(time.Hour, 5)
	h := RateLimitMiddleware(nil, guard)(okHandler())

	ip := "192.168.1.100"
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Other clients keep their own budget
	other := httptest.NewRequest(http.MethodGet, "/test", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)

	requests, _ := guard.counts(ip)
	assert.Equal(t, 6, requests)
}

func TestClientGuard_WindowReset(t *testing.T) {
	now := time.Unix(1000, 0)
	guard := NewClientGuardWithLimit(time.Minute, 1)
	guard.now = func() time.Time { return now }

	assert.True(t, guard.Allow("1.2.3.4"))
	assert.False(t, guard.Allow("1.2.3.4"))

	now = now.Add(2 * time.Minute)
	assert.True(t, guard.Allow("1.2.3.4"))
}

func TestClientGuard_SweepsIdleClients(t *testing.T) {
	now := time.Unix(1000, 0)
	guard := NewClientGuardWithLimit(time.Minute, 10)
	guard.now = func() time.Time { return now }

	guard.Allow("1.1.1.1")
	now = now.Add(2 * time.Minute)
	guard.Allow("2.2.2.2")

	requests, _ := guard.counts("1.1.1.1")
	assert.Equal(t, 0, requests)
	guard.mu.Lock()
	defer guard.mu.Unlock()
	assert.Len(t, guard.clients, 1)
}

func TestProxySet_ClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		trusted    []string
		expected   string
	}{
		{"Direct", "203.0.113.5:4000", "", nil, "203.0.113.5"},
		{"Untrusted Proxy Ignored", "203.0.113.5:4000", "1.1.1.1", nil, "203.0.113.5"},
		{"Trusted Proxy", "10.0.0.1:4000", "1.1.1.1, 2.2.2.2", []string{"10.0.0.1"}, "2.2.2.2"},
		{"No Port", "203.0.113.9", "", nil, "203.0.113.9"},
		{"Trusted Proxy Without Header", "10.0.0.1:4000", "", []string{" 10.0.0.1 "}, "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.expected, newProxySet(tt.trusted).clientIP(req))
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	h := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny")))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("much too large for eight bytes")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	h := SecurityHeadersMiddleware()(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueXSSBlock, rec.Header().Get(HeaderXSSProtection))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
}
