package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/WhackALawyer_Go/internal/database"
	"github.com/osse101/WhackALawyer_Go/internal/handler"
	"github.com/osse101/WhackALawyer_Go/internal/logger"
	"github.com/osse101/WhackALawyer_Go/internal/metrics"
	"github.com/osse101/WhackALawyer_Go/internal/sse"
	"github.com/osse101/WhackALawyer_Go/internal/taunt"
)

// Options carries the server's listen settings
type Options struct {
	Port           int
	AdminAPIKey    string
	TrustedProxies []string
}

// Deps carries the services the routes are served from
type Deps struct {
	// DBPool is nil when rounds are archived in memory
	DBPool      database.Pool
	Sessions    handler.SessionStore
	Hub         *sse.Hub
	Leaderboard handler.LeaderboardService
	Taunts      taunt.Provider
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           NewRouter(opts, deps),
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
	// Shutdown waits for handlers to return; SSE handlers only return once the hub closes their channel
	if deps.Hub != nil {
		httpServer.RegisterOnShutdown(deps.Hub.Stop)
	}
	return &Server{httpServer: httpServer}
}

// NewRouter builds the route tree. Admin routes are mounted only when an
// admin key is configured.
func NewRouter(opts Options, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	guard := NewClientGuard()

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(opts.TrustedProxies, guard))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/archetypes", handler.HandleGetArchetypes())
		r.Get("/taunts", handler.HandleGetTaunts(deps.Taunts))
		r.Get("/leaderboard", handler.HandleGetLeaderboard(deps.Leaderboard))

		sessions := handler.NewSessionHandler(deps.Sessions, deps.Hub)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessions.HandleCreate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessions.HandleGet)
				r.Delete("/", sessions.HandleClose)
				r.Post("/start", sessions.HandleStart)
				r.Post("/whack", sessions.HandleWhack)
				r.Post("/miss", sessions.HandleMiss)
				r.Get("/events", sessions.HandleEvents)
				r.Get("/ws", sessions.HandleWebSocket)
			})
		})

		if opts.AdminAPIKey == "" {
			slog.Warn(LogMsgAdminDisabled)
			return
		}

		admin := handler.NewAdminHandler(deps.Sessions, deps.Hub, deps.Taunts)
		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware(opts.AdminAPIKey, opts.TrustedProxies, guard))
			r.Get("/sessions", admin.HandleGetStats)
			r.Post("/taunts/refresh", admin.HandleRefreshTaunts)
			r.Get("/events", admin.HandleEvents)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// Handler exposes the route tree
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return h.Hijack()
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
