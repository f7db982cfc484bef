package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/WhackALawyer_Go/internal/logger"
)

// clientWindow counts one client's activity inside its current window
type clientWindow struct {
	start      time.Time
	requests   int
	failedAuth int
}

// ClientGuard tracks per-IP request volume and failed admin logins.
// Each IP gets its own fixed window that opens on its first request.
type ClientGuard struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	window  time.Duration
	limit   int
	now     func() time.Time
}

// NewClientGuard creates a guard with the default window and limit
func NewClientGuard() *ClientGuard {
	return NewClientGuardWithLimit(RateLimitWindow, RateLimitRequests)
}

// NewClientGuardWithLimit creates a guard allowing limit requests per IP per window
func NewClientGuardWithLimit(window time.Duration, limit int) *ClientGuard {
	return &ClientGuard{
		clients: make(map[string]*clientWindow),
		window:  window,
		limit:   limit,
		now:     time.Now,
	}
}

// windowFor returns the live window for ip, opening a new one when the old one expired.
// Caller must hold the mutex.
func (g *ClientGuard) windowFor(ip string) *clientWindow {
	now := g.now()
	cw, ok := g.clients[ip]
	if !ok || now.Sub(cw.start) > g.window {
		g.sweep(now)
		cw = &clientWindow{start: now}
		g.clients[ip] = cw
	}
	return cw
}

// sweep drops expired windows so idle clients do not accumulate.
// Caller must hold the mutex.
func (g *ClientGuard) sweep(now time.Time) {
	for ip, cw := range g.clients {
		if now.Sub(cw.start) > g.window {
			delete(g.clients, ip)
		}
	}
}

// Allow records a request from ip and reports whether it is inside the budget
func (g *ClientGuard) Allow(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	cw := g.windowFor(ip)
	cw.requests++
	if cw.requests <= g.limit {
		return true
	}
	if cw.requests == g.limit+1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "limit", g.limit, "window", g.window.String())
	}
	return false
}

// FailedAuth records a rejected admin key from ip
func (g *ClientGuard) FailedAuth(ip string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cw := g.windowFor(ip)
	cw.failedAuth++
	if cw.failedAuth >= FailedAuthAlertMin {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", cw.failedAuth)
	}
}

// counts returns the request and failed-auth counters of ip's current window
func (g *ClientGuard) counts(ip string) (requests, failedAuth int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cw, ok := g.clients[ip]; ok {
		return cw.requests, cw.failedAuth
	}
	return 0, 0
}

// proxySet is the set of peers allowed to set X-Forwarded-For
type proxySet map[string]struct{}

func newProxySet(addrs []string) proxySet {
	set := make(proxySet, len(addrs))
	for _, a := range addrs {
		if a = strings.TrimSpace(a); a != "" {
			set[a] = struct{}{}
		}
	}
	return set
}

// clientIP resolves the caller's address. X-Forwarded-For is only honored when the
// direct peer is a trusted proxy, and then its rightmost hop is used.
func (p proxySet) clientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if _, trusted := p[peer]; !trusted {
		return peer
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return peer
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// AuthMiddleware guards admin routes with a constant-time API key check.
// An empty configured key rejects every request.
func AuthMiddleware(apiKey string, trustedProxies []string, guard *ClientGuard) func(http.Handler) http.Handler {
	proxies := newProxySet(trustedProxies)
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(HeaderAPIKey)
			if len(want) > 0 && subtle.ConstantTimeCompare([]byte(got), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := proxies.clientIP(r)
			guard.FailedAuth(ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"ip", ip,
				"path", r.URL.Path,
				"has_key", got != "")
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RateLimitMiddleware answers 429 once a client exhausts its window budget
func RateLimitMiddleware(trustedProxies []string, guard *ClientGuard) func(http.Handler) http.Handler {
	proxies := newProxySet(trustedProxies)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guard.Allow(proxies.clientIP(r)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// securityHeaders are set on every response
var securityHeaders = [][2]string{
	{HeaderContentType, HeaderValueNoSniff},
	{HeaderFrameOptions, HeaderValueSameOrigin},
	{HeaderXSSProtection, HeaderValueXSSBlock},
	{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
}

// SecurityHeadersMiddleware adds the browser hardening headers
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range securityHeaders {
				h.Set(kv[0], kv[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}
