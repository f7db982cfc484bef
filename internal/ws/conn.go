package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/metrics"
	"github.com/osse101/WhackALawyer_Go/internal/session"
)

// Session is the part of a game session driven over a WebSocket
type Session interface {
	ID() string
	Start(ctx context.Context) (domain.RoundSnapshot, error)
	Whack(ctx context.Context, slotID, x, y int) (*domain.HitOutcome, error)
	Miss(ctx context.Context, x, y int) (*domain.MissOutcome, error)
	Snapshot(ctx context.Context) (domain.RoundSnapshot, error)
	Subscribe(p session.Publisher) func()
}

// Command is an inbound client message
type Command struct {
	Type   string `json:"type" validate:"required,oneof=start whack miss snapshot"`
	SlotID *int   `json:"slot_id" validate:"omitempty,min=0"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  ReadBufferSize,
		WriteBufferSize: WriteBufferSize,
		CheckOrigin:     func(*http.Request) bool { return true },
	}
	validate = validator.New()
)

// Conn pumps session events to one WebSocket client and applies the
// commands it sends
type Conn struct {
	ws      *websocket.Conn
	session Session
	send    chan domain.Event
	done    chan struct{}
	once    sync.Once
	log     *slog.Logger
}

// Serve upgrades the request and runs the connection until either side closes
func Serve(w http.ResponseWriter, r *http.Request, sess Session) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn(LogMsgUpgradeFailed, "session_id", sess.ID(), "error", err)
		return
	}

	c := &Conn{
		ws:      wsConn,
		session: sess,
		send:    make(chan domain.Event, SendBufferSize),
		done:    make(chan struct{}),
		log:     slog.Default().With("session_id", sess.ID(), "remote", r.RemoteAddr),
	}

	metrics.WebSocketConnections.Inc()
	defer metrics.WebSocketConnections.Dec()
	c.log.Info(LogMsgClientConnected)
	defer c.log.Info(LogMsgClientGone)

	unsubscribe := sess.Subscribe(c)
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if snap, err := sess.Snapshot(ctx); err == nil {
		c.Publish(domain.NewEvent(sess.ID(), EventTypeSnapshot, snap))
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writeLoop()
	}()

	c.readLoop(ctx)
	c.close()
	wg.Wait()
}

// Publish queues an event for the client without blocking
func (c *Conn) Publish(evt domain.Event) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- evt:
	default:
		c.log.Warn(LogMsgSendBufferFull, "type", evt.Type)
	}
}

func (c *Conn) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

func (c *Conn) readLoop(ctx context.Context) {
	c.ws.SetReadLimit(MaxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(PongTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(PongTimeout))
	})

	for {
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warn(LogMsgReadError, "error", err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(msg, &cmd); err != nil {
			c.log.Debug(LogMsgInvalidCommand, "error", err)
			c.sendError(ErrMsgInvalidCommand)
			continue
		}
		if err := validate.Struct(cmd); err != nil {
			c.log.Debug(LogMsgInvalidCommand, "error", err)
			c.sendError(ErrMsgInvalidCommand)
			continue
		}
		if cmd.Type == CommandWhack && cmd.SlotID == nil {
			c.log.Debug(LogMsgInvalidCommand, "error", "whack without slot_id")
			c.sendError(ErrMsgInvalidCommand)
			continue
		}

		if err := c.apply(ctx, cmd); err != nil {
			if errors.Is(err, domain.ErrSessionClosed) {
				return
			}
			c.log.Debug(LogMsgCommandFailed, "type", cmd.Type, "error", err)
			c.sendError(err.Error())
		}
	}
}

// apply runs one command. Results reach the client through the session's
// own events, except for snapshots which only this client asked for.
func (c *Conn) apply(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CommandStart:
		_, err := c.session.Start(ctx)
		return err
	case CommandWhack:
		_, err := c.session.Whack(ctx, *cmd.SlotID, cmd.X, cmd.Y)
		return err
	case CommandMiss:
		_, err := c.session.Miss(ctx, cmd.X, cmd.Y)
		return err
	case CommandSnapshot:
		snap, err := c.session.Snapshot(ctx)
		if err != nil {
			return err
		}
		c.Publish(domain.NewEvent(c.session.ID(), EventTypeSnapshot, snap))
	}
	return nil
}

func (c *Conn) sendError(msg string) {
	c.Publish(domain.NewEvent(c.session.ID(), EventTypeError, map[string]string{"error": msg}))
}

func (c *Conn) writeLoop() {
	ticker := time.NewTicker(PingInterval)
	defer ticker.Stop()
	defer c.close()

	for {
		select {
		case <-c.done:
			return

		case evt := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(WriteTimeout))
			if err := c.ws.WriteJSON(evt); err != nil {
				c.log.Warn(LogMsgWriteError, "error", err)
				return
			}
			if evt.Type == domain.EventSessionClosed {
				_ = c.ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(evt.Type)),
					time.Now().Add(WriteTimeout))
				return
			}

		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteTimeout)); err != nil {
				return
			}
		}
	}
}
