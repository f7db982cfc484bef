package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/game"
	"github.com/osse101/WhackALawyer_Go/internal/logger"
	"github.com/osse101/WhackALawyer_Go/internal/scheduler"
	"github.com/osse101/WhackALawyer_Go/internal/worker"
)

// FinishFunc is called from the session goroutine once per finished round
type FinishFunc func(summary domain.RoundSummary)

// Session owns one round. A single goroutine applies commands and timer
// ticks in arrival order, so the round is never touched concurrently.
type Session struct {
	id     string
	player string

	round    *game.Round
	runner   scheduler.Runner
	pub      Publisher
	onFinish FinishFunc
	log      *slog.Logger

	inbox     chan func()
	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	// owned by the session goroutine
	epoch         int
	spawnTask     scheduler.Task
	countdownTask scheduler.Task

	// read by the scheduler between spawn ticks
	interval atomic.Int64

	mu        sync.RWMutex
	listeners map[string]Publisher

	// activity is called on every player command; set once before the session is shared
	activity func()
}

// New creates a session around an IDLE round and starts its goroutine.
// pub and onFinish may be nil.
func New(id, player string, round *game.Round, runner scheduler.Runner, pub Publisher, onFinish FinishFunc) *Session {
	s := &Session{
		id:        id,
		player:    player,
		round:     round,
		runner:    runner,
		pub:       pub,
		onFinish:  onFinish,
		log:       logger.ForSession(id),
		inbox:     make(chan func(), InboxSize),
		quit:      make(chan struct{}),
		stopped:   make(chan struct{}),
		listeners: make(map[string]Publisher),
	}
	s.interval.Store(int64(round.SpawnInterval()))
	go s.run()
	return s
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// PlayerName returns the player's display name
func (s *Session) PlayerName() string {
	return s.player
}

// touch reports player activity to the owner of the session
func (s *Session) touch() {
	if s.activity != nil {
		s.activity()
	}
}

// SpawnTaskName returns the scheduler task name of a session's spawn ticker
func SpawnTaskName(sessionID string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, taskSpawn)
}

// CountdownTaskName returns the scheduler task name of a session's countdown
func CountdownTaskName(sessionID string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, taskCountdown)
}

// Start begins a round from IDLE or FINISHED and arms both tickers
func (s *Session) Start(ctx context.Context) (domain.RoundSnapshot, error) {
	s.touch()
	var snap domain.RoundSnapshot
	var err error
	if e := s.do(ctx, func() { snap, err = s.start() }); e != nil {
		return domain.RoundSnapshot{}, e
	}
	return snap, err
}

// Whack resolves a click on a slot. A whack on an empty slot returns a nil outcome.
func (s *Session) Whack(ctx context.Context, slotID, x, y int) (*domain.HitOutcome, error) {
	s.touch()
	var out *domain.HitOutcome
	var err error
	e := s.do(ctx, func() {
		out, err = s.round.Whack(slotID, x, y)
		if out == nil {
			return
		}
		s.publish(domain.EventWhackResolved, out)
		if out.Killed {
			s.publishBoard()
		}
	})
	if e != nil {
		return nil, e
	}
	return out, err
}

// Miss resolves a click on empty board space
func (s *Session) Miss(ctx context.Context, x, y int) (*domain.MissOutcome, error) {
	s.touch()
	var out *domain.MissOutcome
	var err error
	e := s.do(ctx, func() {
		out, err = s.round.Miss(x, y)
		if out != nil {
			s.publish(domain.EventMissRecorded, out)
		}
	})
	if e != nil {
		return nil, e
	}
	return out, err
}

// Snapshot returns a copy of the round's observable state
func (s *Session) Snapshot(ctx context.Context) (domain.RoundSnapshot, error) {
	s.touch()
	var snap domain.RoundSnapshot
	if err := s.do(ctx, func() { snap = s.round.Snapshot(s.id, s.player) }); err != nil {
		return domain.RoundSnapshot{}, err
	}
	return snap, nil
}

// Subscribe attaches a listener to this session's events until the returned
// function is called
func (s *Session) Subscribe(p Publisher) func() {
	key := uuid.NewString()
	s.mu.Lock()
	s.listeners[key] = p
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, key)
		s.mu.Unlock()
	}
}

// Done is closed once the session goroutine has exited
func (s *Session) Done() <-chan struct{} {
	return s.stopped
}

// Close stops the tickers, publishes session.closed and waits for the
// session goroutine to exit. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.stopped
}

func (s *Session) run() {
	defer close(s.stopped)
	for {
		select {
		case fn := <-s.inbox:
			fn()
		case <-s.quit:
			s.stopTasks()
			s.publish(domain.EventSessionClosed, nil)
			s.log.Info(LogMsgSessionClosed)
			return
		}
	}
}

// do runs fn on the session goroutine and waits for it to finish
func (s *Session) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case s.inbox <- func() { defer close(done); fn() }:
	case <-s.quit:
		return domain.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-s.stopped:
		select {
		case <-done:
			return nil
		default:
			return domain.ErrSessionClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) start() (domain.RoundSnapshot, error) {
	if err := s.round.Start(); err != nil {
		return domain.RoundSnapshot{}, err
	}

	s.stopTasks()
	s.epoch++
	s.interval.Store(int64(s.round.SpawnInterval()))
	s.spawnTask = s.runner.ScheduleFunc(SpawnTaskName(s.id), s.nextSpawn, s.tick(s.epoch, s.spawnTick))
	s.countdownTask = s.runner.Schedule(CountdownTaskName(s.id), domain.CountdownPeriod, s.tick(s.epoch, s.countdownTick))

	snap := s.round.Snapshot(s.id, s.player)
	s.publish(domain.EventRoundStarted, snap)
	s.log.Info(LogMsgRoundStarted, "time_left", snap.TimeLeft)
	return snap, nil
}

// tick wraps a timer callback so it is applied on the session goroutine and
// dropped when it belongs to an earlier round
func (s *Session) tick(epoch int, fn func()) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		err := s.do(ctx, func() {
			if s.epoch == epoch {
				fn()
			}
		})
		if errors.Is(err, domain.ErrSessionClosed) {
			return nil
		}
		return err
	})
}

func (s *Session) nextSpawn() time.Duration {
	return time.Duration(s.interval.Load())
}

func (s *Session) spawnTick() {
	s.round.SpawnTick()
	s.interval.Store(int64(s.round.SpawnInterval()))
	s.publishBoard()
}

func (s *Session) countdownTick() {
	finished := s.round.CountdownTick()
	s.publish(domain.EventCountdownTick, domain.CountdownPayload{TimeLeft: s.round.TimeLeft()})
	if finished {
		s.finish()
	}
}

func (s *Session) finish() {
	s.stopTasks()
	summary := s.round.Summary(s.id, s.player)
	s.publishBoard()
	s.publish(domain.EventRoundFinished, summary)
	s.log.Info(LogMsgRoundFinished, "score", summary.Score, "whacks", summary.Whacks, "misses", summary.Misses)
	if s.onFinish != nil {
		s.onFinish(summary)
	}
}

func (s *Session) stopTasks() {
	if s.spawnTask != nil {
		s.spawnTask.Stop()
		s.spawnTask = nil
	}
	if s.countdownTask != nil {
		s.countdownTask.Stop()
		s.countdownTask = nil
	}
}

func (s *Session) publishBoard() {
	s.publish(domain.EventBoardUpdated, domain.BoardPayload{
		Slots:         s.round.Slots(),
		SpawnInterval: s.round.SpawnInterval().Milliseconds(),
	})
}

func (s *Session) publish(eventType domain.EventType, payload interface{}) {
	evt := domain.NewEvent(s.id, eventType, payload)
	if s.pub != nil {
		s.pub.Publish(evt)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.listeners {
		l.Publish(evt)
	}
}
