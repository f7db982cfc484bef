package ws

import "time"

// Connection tuning
const (
	ReadBufferSize  = 4096
	WriteBufferSize = 4096

	// SendBufferSize bounds events queued for one client
	SendBufferSize = 64

	// MaxMessageSize limits inbound command frames
	MaxMessageSize = 1024

	WriteTimeout = 10 * time.Second
	PongTimeout  = 60 * time.Second
	PingInterval = (PongTimeout * 9) / 10
)

// Inbound command types
const (
	CommandStart    = "start"
	CommandWhack    = "whack"
	CommandMiss     = "miss"
	CommandSnapshot = "snapshot"
)

// Connection-level event types that are not session events
const (
	EventTypeSnapshot = "session.snapshot"
	EventTypeError    = "error"
)

// ErrMsgInvalidCommand is sent to clients for unparseable or invalid commands
const ErrMsgInvalidCommand = "invalid command"

// Log messages
const (
	LogMsgUpgradeFailed   = "WebSocket upgrade failed"
	LogMsgClientConnected = "WebSocket client connected"
	LogMsgClientGone      = "WebSocket client disconnected"
	LogMsgReadError       = "WebSocket read error"
	LogMsgWriteError      = "WebSocket write error"
	LogMsgSendBufferFull  = "WebSocket send buffer full, event dropped"
	LogMsgInvalidCommand  = "Invalid WebSocket command"
	LogMsgCommandFailed   = "WebSocket command failed"
)
