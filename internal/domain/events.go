package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a session event delivered over SSE and WebSocket.
//
// Event types follow the pattern: <entity>.<action> (e.g., "round.started")
type EventType string

const (
	// EventRoundStarted is published on IDLE/FINISHED -> PLAYING
	EventRoundStarted EventType = "round.started"

	// EventBoardUpdated is published after every spawn tick
	EventBoardUpdated EventType = "board.updated"

	// EventCountdownTick is published after every countdown tick
	EventCountdownTick EventType = "countdown.tick"

	// EventWhackResolved is published after a whack on an active slot
	EventWhackResolved EventType = "whack.resolved"

	// EventMissRecorded is published after a click on empty board space
	EventMissRecorded EventType = "miss.recorded"

	// EventRoundFinished is published once when the countdown reaches zero
	EventRoundFinished EventType = "round.finished"

	// EventSessionClosed is published when a session shuts down
	EventSessionClosed EventType = "session.closed"
)

// CountdownPayload is the payload of countdown.tick events
type CountdownPayload struct {
	TimeLeft int `json:"time_left"`
}

// BoardPayload is the payload of board.updated events
type BoardPayload struct {
	Slots         []Slot `json:"slots"`
	SpawnInterval int64  `json:"spawn_interval_ms"`
}

// Event is a session event as delivered to clients
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps a new event for a session
func NewEvent(sessionID string, eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
}
