package handler

import (
	"context"
	"net/http"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/session"
	"github.com/osse101/WhackALawyer_Go/internal/sse"
	"github.com/osse101/WhackALawyer_Go/internal/ws"
)

// SessionStore creates and looks up game sessions
type SessionStore interface {
	Create(ctx context.Context, playerName string) (*session.Session, error)
	Get(id string) (*session.Session, error)
	Remove(id string) error
	Count() int
}

// CreateSessionRequest is the body of POST /sessions
type CreateSessionRequest struct {
	PlayerName string `json:"player_name" validate:"required,max=32,playername"`
}

// CreateSessionResponse returns the new session and its IDLE board
type CreateSessionResponse struct {
	SessionID string               `json:"session_id"`
	Snapshot  domain.RoundSnapshot `json:"snapshot"`
}

// WhackRequest is a click on a slot
type WhackRequest struct {
	SlotID *int `json:"slot_id" validate:"required,min=0"`
	X      int  `json:"x"`
	Y      int  `json:"y"`
}

// WhackResponse reports whether the click hit a lawyer
type WhackResponse struct {
	Hit     bool               `json:"hit"`
	Outcome *domain.HitOutcome `json:"outcome,omitempty"`
}

// MissRequest is a click on empty board space
type MissRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SessionHandler serves the game session API
type SessionHandler struct {
	store SessionStore
	hub   *sse.Hub
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(store SessionStore, hub *sse.Hub) *SessionHandler {
	return &SessionHandler{store: store, hub: hub}
}

// HandleCreate opens a new session
// @Summary Create session
// @Description Fetches a taunt table and opens an IDLE session for a player
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Player"
// @Success 201 {object} CreateSessionResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpCreateSession); err != nil {
		return
	}

	s, err := h.store.Create(r.Context(), req.PlayerName)
	if err != nil {
		respondServiceError(w, r, OpCreateSession, err)
		return
	}

	snap, err := s.Snapshot(r.Context())
	if err != nil {
		respondServiceError(w, r, OpCreateSession, err)
		return
	}

	respondJSON(w, http.StatusCreated, CreateSessionResponse{SessionID: s.ID(), Snapshot: snap})
}

// HandleGet returns a session snapshot
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} domain.RoundSnapshot
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r, OpGetSession)
	if !ok {
		return
	}

	snap, err := s.Snapshot(r.Context())
	if err != nil {
		respondServiceError(w, r, OpGetSession, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// HandleStart starts or replays a round
// @Summary Start round
// @Description Moves an IDLE or FINISHED session to PLAYING
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} domain.RoundSnapshot
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/start [post]
func (h *SessionHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r, OpStartRound)
	if !ok {
		return
	}

	snap, err := s.Start(r.Context())
	if err != nil {
		respondServiceError(w, r, OpStartRound, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// HandleWhack resolves a click on a slot
// @Summary Whack a slot
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body WhackRequest true "Click"
// @Success 200 {object} WhackResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/whack [post]
func (h *SessionHandler) HandleWhack(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r, OpWhack)
	if !ok {
		return
	}

	var req WhackRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpWhack); err != nil {
		return
	}

	outcome, err := s.Whack(r.Context(), *req.SlotID, req.X, req.Y)
	if err != nil {
		respondServiceError(w, r, OpWhack, err)
		return
	}
	respondJSON(w, http.StatusOK, WhackResponse{Hit: outcome != nil, Outcome: outcome})
}

// HandleMiss resolves a click on empty board space
// @Summary Record a miss
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body MissRequest true "Click"
// @Success 200 {object} domain.MissOutcome
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/miss [post]
func (h *SessionHandler) HandleMiss(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r, OpMiss)
	if !ok {
		return
	}

	var req MissRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpMiss); err != nil {
		return
	}

	outcome, err := s.Miss(r.Context(), req.X, req.Y)
	if err != nil {
		respondServiceError(w, r, OpMiss, err)
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}

// HandleClose closes a session
// @Summary Close session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Remove(sessionIDParam(r)); err != nil {
		respondServiceError(w, r, OpCloseSession, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionClosed})
}

// HandleEvents streams a session's events over SSE, starting with a snapshot
// @Summary Session event stream
// @Description Server-sent events for one session. Filter with ?types=board.updated,countdown.tick
// @Tags sessions
// @Produce text/event-stream
// @Param id path string true "Session ID"
// @Param types query string false "Comma-separated event types"
// @Success 200 {string} string "event stream"
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/events [get]
func (h *SessionHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r, OpGetSession)
	if !ok {
		return
	}

	snap, err := s.Snapshot(r.Context())
	if err != nil {
		respondServiceError(w, r, OpGetSession, err)
		return
	}

	sse.Serve(w, r, h.hub, s.ID(), domain.NewEvent(s.ID(), ws.EventTypeSnapshot, snap))
}

// HandleWebSocket upgrades to a WebSocket carrying events out and commands in
// @Summary Session WebSocket
// @Description Sends session events; accepts {"type":"start"|"whack"|"miss"|"snapshot","slot_id":0,"x":0,"y":0}
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 101 {string} string "switching protocols"
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/ws [get]
func (h *SessionHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r, OpGetSession)
	if !ok {
		return
	}
	ws.Serve(w, r, s)
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request, opName string) (*session.Session, bool) {
	id := sessionIDParam(r)
	if id == "" {
		respondError(w, http.StatusBadRequest, ErrMsgMissingSessionID)
		return nil, false
	}
	s, err := h.store.Get(id)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return nil, false
	}
	return s, true
}
