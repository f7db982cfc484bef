package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/game"
	"github.com/osse101/WhackALawyer_Go/internal/logger"
	"github.com/osse101/WhackALawyer_Go/internal/metrics"
	"github.com/osse101/WhackALawyer_Go/internal/scheduler"
	"github.com/osse101/WhackALawyer_Go/internal/taunt"
	"github.com/osse101/WhackALawyer_Go/internal/utils"
)

// ManagerConfig tunes session storage
type ManagerConfig struct {
	MaxSessions int
	// TTL is how long a session survives without being accessed
	TTL   time.Duration
	Round game.Config
	// Seed makes every session's randomness deterministic; 0 means time-based
	Seed int64
}

// Manager creates sessions and keeps them until they are closed or idle
// for longer than the TTL
type Manager struct {
	cfg      ManagerConfig
	taunts   taunt.Provider
	runner   scheduler.Runner
	pub      Publisher
	onFinish FinishFunc

	mu       sync.Mutex
	sessions *expirable.LRU[string, *Session]
}

// NewManager creates a session manager
func NewManager(cfg ManagerConfig, taunts taunt.Provider, runner scheduler.Runner, pub Publisher, onFinish FinishFunc) *Manager {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	m := &Manager{
		cfg:      cfg,
		taunts:   taunts,
		runner:   runner,
		pub:      pub,
		onFinish: onFinish,
	}
	m.sessions = expirable.NewLRU[string, *Session](cfg.MaxSessions, m.evicted, cfg.TTL)
	return m
}

// Create fetches a taunt table and opens a new IDLE session
func (m *Manager) Create(ctx context.Context, playerName string) (*Session, error) {
	log := logger.FromContext(ctx)

	if m.Count() >= m.cfg.MaxSessions {
		return nil, fmt.Errorf("%w: limit is %d", domain.ErrSessionLimit, m.cfg.MaxSessions)
	}

	table, err := m.taunts.FetchTaunts(ctx)
	if err != nil {
		log.Warn(LogMsgTauntFetchError, "error", err)
		table = domain.FallbackTaunts()
	}

	id := uuid.NewString()
	round := game.NewRound(m.cfg.Round, table.WithFallback(), utils.NewRand(m.cfg.Seed))
	s := New(id, playerName, round, m.runner, m.pub, m.onFinish)
	s.activity = func() { m.renew(id) }

	m.mu.Lock()
	if m.sessions.Len() >= m.cfg.MaxSessions {
		m.mu.Unlock()
		s.Close()
		return nil, fmt.Errorf("%w: limit is %d", domain.ErrSessionLimit, m.cfg.MaxSessions)
	}
	m.sessions.Add(id, s)
	m.mu.Unlock()

	metrics.ActiveSessions.Inc()
	log.Info(LogMsgSessionCreated, "session_id", id, "player", playerName)
	return s, nil
}

// Get returns a session and renews its TTL
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	m.sessions.Add(id, s)
	return s, nil
}

// renew restarts the idle TTL of a session that is still stored.
// Player commands call it whichever transport they arrive on.
func (m *Manager) renew(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions.Peek(id); ok {
		m.sessions.Add(id, s)
	}
}

// Remove closes and forgets a session
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sessions.Remove(id) {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return nil
}

// Count returns the number of open sessions
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions.Len()
}

// Close closes every session
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions.Purge()
}

// evicted runs under the LRU lock for removals, purges and expiry
func (m *Manager) evicted(id string, s *Session) {
	s.Close()
	metrics.ActiveSessions.Dec()
	slog.Debug(LogMsgSessionEvicted, "session_id", id)
}
