package handler

import (
	"net/http"

	"github.com/osse101/WhackALawyer_Go/internal/logger"
	"github.com/osse101/WhackALawyer_Go/internal/sse"
	"github.com/osse101/WhackALawyer_Go/internal/taunt"
)

// SessionCounter reports the number of open sessions
type SessionCounter interface {
	Count() int
}

// AdminStatsResponse summarizes live server state
type AdminStatsResponse struct {
	ActiveSessions int `json:"active_sessions"`
	SSEClients     int `json:"sse_clients"`
}

// TauntRefreshResponse reports whether a cached taunt table was dropped
type TauntRefreshResponse struct {
	Message string `json:"message"`
	Purged  bool   `json:"purged"`
}

// AdminHandler serves operator endpoints
type AdminHandler struct {
	sessions SessionCounter
	hub      *sse.Hub
	taunts   taunt.Provider
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(sessions SessionCounter, hub *sse.Hub, taunts taunt.Provider) *AdminHandler {
	return &AdminHandler{sessions: sessions, hub: hub, taunts: taunts}
}

// HandleGetStats returns active session and stream counts
// @Summary Active sessions
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} AdminStatsResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /api/v1/admin/sessions [get]
func (h *AdminHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, AdminStatsResponse{
		ActiveSessions: h.sessions.Count(),
		SSEClients:     h.hub.ClientCount(),
	})
}

// HandleRefreshTaunts purges the cached taunt table so the next session
// setup fetches a fresh one
// @Summary Refresh taunts
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} TauntRefreshResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /api/v1/admin/taunts/refresh [post]
func (h *AdminHandler) HandleRefreshTaunts(w http.ResponseWriter, r *http.Request) {
	purger, ok := h.taunts.(taunt.Purger)
	if !ok {
		respondJSON(w, http.StatusOK, TauntRefreshResponse{Message: MsgTauntCacheMissing})
		return
	}

	purger.Purge()
	logger.FromContext(r.Context()).Info(LogMsgTauntCachePurged)
	respondJSON(w, http.StatusOK, TauntRefreshResponse{Message: MsgTauntCachePurged, Purged: true})
}

// HandleEvents streams every session's events
// @Summary Event firehose
// @Tags admin
// @Security ApiKeyAuth
// @Produce text/event-stream
// @Param types query string false "Comma-separated event types"
// @Success 200 {string} string "event stream"
// @Router /api/v1/admin/events [get]
func (h *AdminHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	sse.Handler(h.hub)(w, r)
}
