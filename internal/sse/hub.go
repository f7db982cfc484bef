package sse

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
)

// Client represents a connected SSE client
type Client struct {
	ID           string
	Topic        string // session id; empty receives every session
	EventChannel chan domain.Event
	EventFilter  map[domain.EventType]bool // nil means all events, otherwise only specified types
}

func (c *Client) wants(evt domain.Event) bool {
	if c.Topic != "" && c.Topic != evt.SessionID {
		return false
	}
	return c.EventFilter == nil || c.EventFilter[evt.Type]
}

// Hub fans session events out to SSE clients. Clients are indexed by topic so a
// session's events only visit that session's subscribers and the wildcard ones.
type Hub struct {
	topics     map[string]map[string]*Client
	count      int
	broadcast  chan domain.Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		topics:     make(map[string]map[string]*Client),
		broadcast:  make(chan domain.Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan *Client, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the broadcast loop and closes every client channel
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.shutdown) })
	h.wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, subs := range h.topics {
		for _, c := range subs {
			close(c.EventChannel)
		}
	}
	h.topics = make(map[string]map[string]*Client)
	h.count = 0
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			h.remove(c)
		case evt := <-h.broadcast:
			h.deliver(evt)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[c.Topic]
	if !ok {
		subs = make(map[string]*Client)
		h.topics[c.Topic] = subs
	}
	subs[c.ID] = c
	h.count++
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.topics[c.Topic]
	if _, ok := subs[c.ID]; !ok {
		return
	}
	close(c.EventChannel)
	delete(subs, c.ID)
	if len(subs) == 0 {
		delete(h.topics, c.Topic)
	}
	h.count--
}

func (h *Hub) deliver(evt domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.offer(h.topics[evt.SessionID], evt)
	if evt.SessionID != "" {
		h.offer(h.topics[""], evt)
	}
}

// offer sends evt to every interested subscriber without blocking on slow ones.
// Caller must hold the read lock.
func (h *Hub) offer(subs map[string]*Client, evt domain.Event) {
	for _, c := range subs {
		if !c.wants(evt) {
			continue
		}
		select {
		case c.EventChannel <- evt:
		default:
			slog.Debug(LogMsgClientLagging, "client_id", c.ID, "type", evt.Type)
		}
	}
}

// Register adds a client for one session topic ("" for all sessions)
func (h *Hub) Register(topic string, eventTypes []string) *Client {
	client := &Client{
		ID:           uuid.NewString(),
		Topic:        topic,
		EventChannel: make(chan domain.Event, ClientEventBuffer),
	}

	if len(eventTypes) > 0 {
		client.EventFilter = make(map[domain.EventType]bool, len(eventTypes))
		for _, t := range eventTypes {
			if t = strings.TrimSpace(t); t != "" {
				client.EventFilter[domain.EventType(t)] = true
			}
		}
	}

	select {
	case h.register <- client:
	case <-h.shutdown:
		close(client.EventChannel)
	}
	return client
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.shutdown:
	}
}

// Publish queues a session event for fan-out. Events are dropped when the
// broadcast buffer is full.
func (h *Hub) Publish(evt domain.Event) {
	select {
	case h.broadcast <- evt:
	default:
		slog.Warn(LogMsgBroadcastDropped, "type", evt.Type, "session_id", evt.SessionID)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// FormatSSEMessage formats an event for transmission
func FormatSSEMessage(event domain.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if event.ID != "" {
		b.WriteString("id: " + event.ID + "\n")
	}
	b.WriteString("event: " + string(event.Type) + "\n")
	b.WriteString("data: " + string(data) + "\n\n")
	return []byte(b.String()), nil
}
