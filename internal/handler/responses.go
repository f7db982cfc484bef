package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, so only logging is possible
		slog.Error(LogMsgEncodeResponseFailed, "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteResponseFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service failure and maps it to a user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgSessionNotFoundError = "Session not found"
	ErrMsgSessionClosedError   = "Session is closed"
	ErrMsgSessionLimitError    = "Too many active sessions. Please try again later."
	ErrMsgInvalidSlotError     = "Slot must be between 0 and 8"
	ErrMsgRoundNotPlayingError = "The round is not in progress"
	ErrMsgRoundRunningError    = "A round is already in progress"
	ErrMsgInvalidLimitError    = "Limit must be between 1 and 100"
	ErrMsgRequestCancelledErr  = "Request cancelled"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages that never expose internal details
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrSessionClosed):
		return http.StatusGone, ErrMsgSessionClosedError
	case errors.Is(err, domain.ErrSessionLimit):
		return http.StatusServiceUnavailable, ErrMsgSessionLimitError
	case errors.Is(err, domain.ErrInvalidSlot):
		return http.StatusBadRequest, ErrMsgInvalidSlotError
	case errors.Is(err, domain.ErrRoundNotPlaying):
		return http.StatusConflict, ErrMsgRoundNotPlayingError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgRoundRunningError
	case errors.Is(err, domain.ErrInvalidLimit):
		return http.StatusBadRequest, ErrMsgInvalidLimitError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrMsgRequestCancelledErr
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
