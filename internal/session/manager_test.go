package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/game"
	"github.com/osse101/WhackALawyer_Go/internal/scheduler"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) FetchTaunts(ctx context.Context) (domain.TauntTable, error) {
	args := m.Called(ctx)
	table, _ := args.Get(0).(domain.TauntTable)
	return table, args.Error(1)
}

func newManager(t *testing.T, provider *mockProvider, maxSessions int) (*Manager, *scheduler.Manual, *recorder) {
	t.Helper()
	manual := scheduler.NewManual()
	events := &recorder{}
	m := NewManager(ManagerConfig{
		MaxSessions: maxSessions,
		TTL:         time.Hour,
		Round:       game.Config{RoundDuration: testRoundSeconds},
		Seed:        11,
	}, provider, manual, events, nil)
	t.Cleanup(m.Close)
	return m, manual, events
}

func TestManager_CreateUsesFetchedTaunts(t *testing.T) {
	provider := new(mockProvider)
	table := domain.TauntTable{
		domain.ArchetypeBiller:    {"b"},
		domain.ArchetypePedant:    {"p"},
		domain.ArchetypeAggressor: {"a"},
		domain.ArchetypeStaller:   {"s"},
	}
	provider.On("FetchTaunts", mock.Anything).Return(table, nil).Once()

	m, manual, _ := newManager(t, provider, 10)
	ctx := context.Background()

	s, err := m.Create(ctx, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, "alice", s.PlayerName())
	assert.Equal(t, 1, m.Count())

	_, err = s.Start(ctx)
	require.NoError(t, err)
	require.True(t, manual.Fire(SpawnTaskName(s.ID())))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	slot, ok := activeSlot(snap)
	require.True(t, ok)
	assert.Equal(t, table[slot.Archetype][0], slot.Taunt)

	provider.AssertExpectations(t)
}

func TestManager_CreateFallsBackOnProviderError(t *testing.T) {
	provider := new(mockProvider)
	provider.On("FetchTaunts", mock.Anything).Return(nil, errors.New("boom")).Once()

	m, manual, _ := newManager(t, provider, 10)
	ctx := context.Background()

	s, err := m.Create(ctx, "bob")
	require.NoError(t, err)

	_, err = s.Start(ctx)
	require.NoError(t, err)
	require.True(t, manual.Fire(SpawnTaskName(s.ID())))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	slot, ok := activeSlot(snap)
	require.True(t, ok)
	assert.Contains(t, domain.FallbackTaunts()[slot.Archetype], slot.Taunt)
}

func TestManager_Limit(t *testing.T) {
	provider := new(mockProvider)
	provider.On("FetchTaunts", mock.Anything).Return(domain.FallbackTaunts(), nil)

	m, _, _ := newManager(t, provider, 2)
	ctx := context.Background()

	_, err := m.Create(ctx, "a")
	require.NoError(t, err)
	_, err = m.Create(ctx, "b")
	require.NoError(t, err)

	_, err = m.Create(ctx, "c")
	assert.ErrorIs(t, err, domain.ErrSessionLimit)
	assert.Equal(t, 2, m.Count())
}

func TestManager_GetAndRemove(t *testing.T) {
	provider := new(mockProvider)
	provider.On("FetchTaunts", mock.Anything).Return(domain.FallbackTaunts(), nil)

	m, _, events := newManager(t, provider, 10)

	_, err := m.Get("missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, m.Remove("missing"), domain.ErrSessionNotFound)

	s, err := m.Create(context.Background(), "dana")
	require.NoError(t, err)

	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, m.Remove(s.ID()))
	assert.Zero(t, m.Count())

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("removed session still running")
	}
	assert.Equal(t, 1, events.count(domain.EventSessionClosed))

	_, err = m.Get(s.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_CloseClosesSessions(t *testing.T) {
	provider := new(mockProvider)
	provider.On("FetchTaunts", mock.Anything).Return(domain.FallbackTaunts(), nil)

	m, _, _ := newManager(t, provider, 10)
	a, err := m.Create(context.Background(), "a")
	require.NoError(t, err)
	b, err := m.Create(context.Background(), "b")
	require.NoError(t, err)

	m.Close()

	<-a.Done()
	<-b.Done()
	assert.Zero(t, m.Count())
}

func TestFanout(t *testing.T) {
	var a, b recorder
	var calls int
	f := Fanout{&a, nil, &b, PublisherFunc(func(domain.Event) { calls++ })}

	f.Publish(domain.NewEvent("s", domain.EventMissRecorded, nil))

	assert.Len(t, a.types(), 1)
	assert.Len(t, b.types(), 1)
	assert.Equal(t, 1, calls)
}

func TestManager_PlayerCommandsRenewTTL(t *testing.T) {
	provider := new(mockProvider)
	provider.On("FetchTaunts", mock.Anything).Return(domain.FallbackTaunts(), nil)

	m := NewManager(ManagerConfig{
		MaxSessions: 4,
		TTL:         300 * time.Millisecond,
		Round:       game.Config{RoundDuration: testRoundSeconds},
		Seed:        11,
	}, provider, scheduler.NewManual(), nil, nil)
	t.Cleanup(m.Close)

	ctx := context.Background()
	s, err := m.Create(ctx, "ws-player")
	require.NoError(t, err)

	// Commands arrive directly on the session, never through Get
	deadline := time.Now().Add(600 * time.Millisecond)
	for time.Now().Before(deadline) {
		_, err := s.Snapshot(ctx)
		require.NoError(t, err)
		time.Sleep(50 * time.Millisecond)
	}

	_, err = m.Get(s.ID())
	require.NoError(t, err)

	// Silence lets it expire; Count does not renew
	require.Eventually(t, func() bool { return m.Count() == 0 }, 2*time.Second, 20*time.Millisecond)
	_, err = m.Get(s.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("expired session was not closed")
	}
}
