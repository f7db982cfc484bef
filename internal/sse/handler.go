package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
)

// Handler returns an HTTP handler streaming events of every session
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Serve(w, r, hub, "")
	}
}

// Serve streams the events of one topic until the client disconnects, the
// session closes or the hub stops. Initial events are written first.
func Serve(w http.ResponseWriter, r *http.Request, hub *Hub, topic string, initial ...domain.Event) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var eventTypes []string
	if filterParam := r.URL.Query().Get("types"); filterParam != "" {
		eventTypes = strings.Split(filterParam, ",")
	}

	client := hub.Register(topic, eventTypes)
	log := slog.Default().With("client_id", client.ID, "topic", topic)
	log.Info(LogMsgClientConnected, "filters", eventTypes, "total_clients", hub.ClientCount())

	defer func() {
		hub.Unregister(client)
		log.Info(LogMsgClientDisconnected)
	}()

	write := func(evt domain.Event) bool {
		msg, err := FormatSSEMessage(evt)
		if err != nil {
			log.Error(LogMsgWriteError, "error", err)
			return true
		}
		if _, err := w.Write(msg); err != nil {
			log.Warn(LogMsgWriteError, "error", err)
			return false
		}
		flusher.Flush()
		return true
	}

	connected := domain.Event{
		ID:        client.ID,
		Type:      EventTypeConnected,
		SessionID: topic,
		Timestamp: time.Now().Unix(),
		Payload:   map[string]interface{}{"client_id": client.ID, "filters": eventTypes},
	}
	if !write(connected) {
		return
	}
	for _, evt := range initial {
		if !write(evt) {
			return
		}
	}

	ticker := time.NewTicker(KeepaliveInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-client.EventChannel:
			if !ok {
				return
			}
			if !write(evt) || closesTopic(evt, topic) {
				return
			}

		case <-ticker.C:
			if !write(domain.Event{Type: EventTypeKeepalive, SessionID: topic, Timestamp: time.Now().Unix()}) {
				return
			}
		}
	}
}

// closesTopic reports whether evt ends the stream of a single-session topic.
// The all-sessions stream outlives every individual session.
func closesTopic(evt domain.Event, topic string) bool {
	return topic != "" && evt.SessionID == topic && evt.Type == domain.EventSessionClosed
}
