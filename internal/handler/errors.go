package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgMissingSessionID      = "Missing session id"
)

// Success messages for API responses
const (
	MsgSessionClosed     = "Session closed"
	MsgTauntCachePurged  = "Taunt cache purged"
	MsgTauntCacheMissing = "Taunt provider has no cache"
)

// Log messages
const (
	LogMsgEncodeResponseFailed = "Failed to encode JSON response"
	LogMsgWriteResponseFailed  = "Failed to write response buffer"
	LogMsgReadinessFailed      = "Readiness check failed"
	LogMsgTauntCachePurged     = "Taunt cache purged"
)

// Operation names used in service error logs
const (
	OpCreateSession  = "Create session"
	OpGetSession     = "Get session"
	OpStartRound     = "Start round"
	OpWhack          = "Whack"
	OpMiss           = "Miss"
	OpCloseSession   = "Close session"
	OpGetLeaderboard = "Get leaderboard"
	OpGetTaunts      = "Get taunts"
)
