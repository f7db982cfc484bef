package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/WhackALawyer_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// It logs the operation and returns a standardized error response to the client.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req WhackRequest
//	if err := DecodeAndValidateRequest(r, w, &req, OpWhack); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetOptionalIntQueryParam parses an optional integer query parameter.
// ok is false when the parameter is present but not an integer; the error
// response has then already been written.
func GetOptionalIntQueryParam(r *http.Request, w http.ResponseWriter, paramName string, defaultValue int, errMsg string) (int, bool) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return defaultValue, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Invalid query parameter", "param", paramName, "value", raw)
		respondError(w, http.StatusBadRequest, errMsg)
		return 0, false
	}
	return v, true
}

// sessionIDParam returns the {id} URL parameter
func sessionIDParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}
