package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Session errors
	ErrMsgSessionNotFound = "session not found"
	ErrMsgSessionClosed   = "session is closed"
	ErrMsgSessionLimit    = "too many active sessions"

	// Round errors
	ErrMsgInvalidSlot         = "invalid slot"
	ErrMsgRoundNotPlaying     = "round is not in progress"
	ErrMsgInvalidTransition   = "invalid round transition"
	ErrMsgTauntProviderFailed = "taunt provider unavailable"

	// Archive errors
	ErrMsgInvalidLimit  = "invalid limit"
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)
	ErrSessionClosed   = errors.New(ErrMsgSessionClosed)
	ErrSessionLimit    = errors.New(ErrMsgSessionLimit)

	ErrInvalidSlot       = errors.New(ErrMsgInvalidSlot)
	ErrRoundNotPlaying   = errors.New(ErrMsgRoundNotPlaying)
	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)

	// ErrTauntProviderUnavailable never reaches players; the fallback table replaces it
	ErrTauntProviderUnavailable = errors.New(ErrMsgTauntProviderFailed)

	ErrInvalidLimit  = errors.New(ErrMsgInvalidLimit)
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
