package session

import "time"

// Session runtime tuning
const (
	// InboxSize bounds queued commands and ticks per session
	InboxSize = 32

	DefaultMaxSessions = 1000
	DefaultTTL         = 30 * time.Minute
)

// Task name suffixes
const (
	taskSpawn     = "spawn"
	taskCountdown = "countdown"
)

// Log messages
const (
	LogMsgSessionCreated  = "Session created"
	LogMsgSessionClosed   = "Session closed"
	LogMsgRoundStarted    = "Round started"
	LogMsgRoundFinished   = "Round finished"
	LogMsgTauntFetchError = "Taunt fetch failed, using built-in table"
	LogMsgSessionEvicted  = "Session evicted"
)
