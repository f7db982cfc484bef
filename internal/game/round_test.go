package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/utils"
)

// scriptedRand replays queued values and returns zero once they run out
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

// fakeClock is a manually advanced clock
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestRound(t *testing.T, rng utils.Rand) (*Round, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRound(Config{RoundDuration: domain.RoundDuration, Clock: clock.Now}, domain.FallbackTaunts(), rng)
	return r, clock
}

// spawnInto spawns one lawyer of the rolled archetype into an empty slot.
// Lawyers already on the board stay.
func spawnInto(t *testing.T, r *Round, rng *scriptedRand, slotID int, roll float64) {
	t.Helper()
	pick := -1
	for i, id := range r.emptySlots() {
		if id == slotID {
			pick = i
		}
	}
	require.GreaterOrEqual(t, pick, 0, "slot %d is not empty", slotID)
	for i := 0; i < r.activeCount(); i++ {
		rng.floats = append(rng.floats, 0)
	}
	rng.ints = append(rng.ints, pick, 0)
	rng.floats = append(rng.floats, roll)
	r.SpawnTick()
	require.True(t, r.slots[slotID].Active)
}

func activeSlots(r *Round) int {
	n := 0
	for _, s := range r.Slots() {
		if s.Active {
			n++
		}
	}
	return n
}

func TestNewRound_Idle(t *testing.T) {
	r, _ := newTestRound(t, &scriptedRand{})

	assert.Equal(t, domain.RoundIdle, r.Status())
	assert.Equal(t, domain.RoundDuration, r.TimeLeft())
	assert.Equal(t, domain.InitialSpawnInterval, r.SpawnInterval())

	slots := r.Slots()
	require.Len(t, slots, domain.GridSize)
	for i, s := range slots {
		assert.Equal(t, i, s.ID)
		assert.False(t, s.Active)
	}
}

func TestNewRound_Defaults(t *testing.T) {
	r := NewRound(Config{}, nil, utils.NewRand(1))
	assert.Equal(t, domain.RoundDuration, r.TimeLeft())
	assert.NotNil(t, r.now)
}

func TestStart_Transitions(t *testing.T) {
	r, _ := newTestRound(t, &scriptedRand{})

	require.NoError(t, r.Start())
	assert.Equal(t, domain.RoundPlaying, r.Status())

	err := r.Start()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.RoundPlaying, r.Status())
}

func TestSpawnTick_NoopWhenNotPlaying(t *testing.T) {
	r, _ := newTestRound(t, &scriptedRand{})

	r.SpawnTick()

	assert.Zero(t, activeSlots(r))
	assert.Equal(t, domain.InitialSpawnInterval, r.SpawnInterval())
}

func TestSpawnTick_WeightedRoll(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		want domain.Archetype
		hp   int
	}{
		{"biller", 0.90, domain.ArchetypeBiller, 2},
		{"aggressor", 0.70, domain.ArchetypeAggressor, 1},
		{"pedant", 0.50, domain.ArchetypePedant, 1},
		{"staller", 0.10, domain.ArchetypeStaller, 1},
		{"biller boundary is exclusive", BillerThreshold, domain.ArchetypeAggressor, 1},
		{"pedant boundary is exclusive", PedantThreshold, domain.ArchetypeStaller, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &scriptedRand{}
			r, _ := newTestRound(t, rng)
			require.NoError(t, r.Start())

			spawnInto(t, r, rng, 4, tt.roll)

			slot := r.Slots()[4]
			assert.Equal(t, tt.want, slot.Archetype)
			assert.Equal(t, tt.hp, slot.Health)
			assert.Equal(t, tt.hp, slot.MaxHealth)
			assert.Equal(t, tt.want.Profile().Subtitle, slot.Subtitle)
			assert.Contains(t, domain.FallbackTaunts()[tt.want], slot.Taunt)
			assert.Equal(t, 1, slot.Generation)
		})
	}
}

func TestSpawnTick_HideStep(t *testing.T) {
	rng := &scriptedRand{}
	r, _ := newTestRound(t, rng)
	require.NoError(t, r.Start())
	spawnInto(t, r, rng, 0, 0.1)

	// Below the stay chance the lawyer stays; the spawn then fills slot 1
	rng.floats = []float64{0.5, 0.1}
	rng.ints = []int{0, 0}
	r.SpawnTick()
	assert.True(t, r.slots[0].Active)
	assert.True(t, r.slots[1].Active)

	// At or above the stay chance the lawyer hides
	rng.floats = []float64{domain.StayActiveChance, 0.5, 0.1}
	rng.ints = []int{8, 0}
	r.SpawnTick()
	assert.False(t, r.slots[0].Active)
	assert.True(t, r.slots[1].Active)
}

func TestSpawnTick_CapsActiveSlots(t *testing.T) {
	rng := &scriptedRand{}
	r, _ := newTestRound(t, rng)
	require.NoError(t, r.Start())

	// Every active lawyer stays (roll 0) so the board fills up to the cap
	for i := 0; i < 10; i++ {
		r.SpawnTick()
		assert.LessOrEqual(t, activeSlots(r), domain.MaxActiveSlots)
	}
	assert.Equal(t, domain.MaxActiveSlots, activeSlots(r))
}

func TestSpawnTick_ActiveNeverExceedsCap_Random(t *testing.T) {
	r, _ := newTestRound(t, utils.NewRand(99))
	require.NoError(t, r.Start())

	for i := 0; i < 5000; i++ {
		r.SpawnTick()
		require.LessOrEqual(t, activeSlots(r), domain.MaxActiveSlots, "tick %d", i)
	}
}

func TestSpawnTick_SpawnsOnlyIntoEmptySlots(t *testing.T) {
	rng := &scriptedRand{}
	r, _ := newTestRound(t, rng)
	require.NoError(t, r.Start())
	spawnInto(t, r, rng, 0, 0.9)
	firstTaunt := r.slots[0].Taunt

	// Index 0 of the empty list is slot 1 now that slot 0 is taken
	rng.floats = []float64{0.0, 0.1}
	rng.ints = []int{0, 0}
	r.SpawnTick()

	assert.Equal(t, domain.ArchetypeBiller, r.slots[0].Archetype)
	assert.Equal(t, firstTaunt, r.slots[0].Taunt)
	assert.Equal(t, domain.ArchetypeStaller, r.slots[1].Archetype)
	assert.Equal(t, 2, r.slots[1].Generation)
}

func TestSpawnTick_IntervalDecay(t *testing.T) {
	r, _ := newTestRound(t, utils.NewRand(1))
	require.NoError(t, r.Start())

	r.SpawnTick()
	assert.Equal(t, time.Duration(float64(domain.InitialSpawnInterval)*domain.SpawnIntervalDecay), r.SpawnInterval())

	prev := r.SpawnInterval()
	for i := 0; i < 400; i++ {
		r.SpawnTick()
		require.LessOrEqual(t, r.SpawnInterval(), prev)
		require.GreaterOrEqual(t, r.SpawnInterval(), domain.MinSpawnInterval)
		prev = r.SpawnInterval()
	}
	assert.Equal(t, domain.MinSpawnInterval, r.SpawnInterval())
}

func TestSpawnTick_EmptyPoolUsesDefaultTaunt(t *testing.T) {
	rng := &scriptedRand{}
	r := NewRound(DefaultConfig(), domain.TauntTable{}, rng)
	require.NoError(t, r.Start())

	spawnInto(t, r, rng, 2, 0.5)

	assert.Equal(t, domain.DefaultTaunt, r.slots[2].Taunt)
}

func TestWhack_BillerNeedsTwoHits(t *testing.T) {
	rng := &scriptedRand{}
	r, _ := newTestRound(t, rng)
	require.NoError(t, r.Start())
	spawnInto(t, r, rng, 3, 0.95)

	first, err := r.Whack(3, 100, 100)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.False(t, first.Killed)
	assert.Equal(t, domain.ArmorHeldMessage, first.Message)
	assert.Equal(t, domain.ArmorHitPoints, first.RawPoints)
	assert.Equal(t, FinalPoints(domain.ArmorHitPoints, 1), first.Points)
	assert.Zero(t, first.MoneySaved)
	assert.Equal(t, 1, first.Health)
	assert.True(t, r.slots[3].Active)
	require.Len(t, first.Particles, 1)
	assert.Equal(t, domain.ParticleStyleArmor, first.Particles[0].Style)
	assert.Equal(t, 100+ArmorTextOffsetY, first.Particles[0].Y)

	second, err := r.Whack(3, 100, 100)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.True(t, second.Killed)
	assert.Equal(t, "全额退款!", second.Message)
	assert.Equal(t, 500, second.RawPoints)
	assert.Equal(t, FinalPoints(500, 2), second.Points)
	assert.Equal(t, 1000, second.MoneySaved)
	assert.Zero(t, second.Health)
	assert.False(t, r.slots[3].Active)

	require.Len(t, second.Particles, 3)
	assert.Equal(t, domain.ParticleStyleKill, second.Particles[0].Style)
	assert.Equal(t, 120, second.Particles[1].X)
	assert.Equal(t, 80, second.Particles[2].X)
	assert.Equal(t, domain.LootMoneyBag, second.Particles[1].Text)

	score := r.Score()
	assert.Equal(t, 2, score.Whacks)
	assert.Equal(t, 2, score.Combo)
	assert.Equal(t, 1000, score.MoneySaved)
	assert.Equal(t, first.Points+second.Points, score.Score)
}

func TestWhack_SingleHitArchetypes(t *testing.T) {
	tests := []struct {
		roll     float64
		message  string
		lootSize int
	}{
		{0.70, "吊销执照!", 0},
		{0.50, "反对无效!", 1},
		{0.10, "立刻执行!", 0},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			rng := &scriptedRand{}
			r, _ := newTestRound(t, rng)
			require.NoError(t, r.Start())
			spawnInto(t, r, rng, 5, tt.roll)

			out, err := r.Whack(5, 0, 0)
			require.NoError(t, err)
			require.NotNil(t, out)
			assert.True(t, out.Killed)
			assert.Equal(t, tt.message, out.Message)
			assert.Equal(t, 200, out.RawPoints)
			assert.Equal(t, 220, out.Points)
			assert.Equal(t, 200, out.MoneySaved)
			assert.Len(t, out.Particles, 1+tt.lootSize)
		})
	}
}

func TestWhack_InactiveSlotIsNoop(t *testing.T) {
	r, _ := newTestRound(t, &scriptedRand{})
	require.NoError(t, r.Start())

	out, err := r.Whack(0, 0, 0)

	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, domain.ScoreState{}, r.Score())
}

func TestWhack_Errors(t *testing.T) {
	r, _ := newTestRound(t, &scriptedRand{})

	_, err := r.Whack(0, 0, 0)
	assert.ErrorIs(t, err, domain.ErrRoundNotPlaying)

	_, err = r.Whack(-1, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)

	_, err = r.Whack(domain.GridSize, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)

	_, err = r.Miss(0, 0)
	assert.ErrorIs(t, err, domain.ErrRoundNotPlaying)
}

func TestWhack_HealthNeverNegative(t *testing.T) {
	rng := utils.NewRand(7)
	r, _ := newTestRound(t, rng)
	require.NoError(t, r.Start())

	for i := 0; i < 2000; i++ {
		if i%3 == 0 {
			r.SpawnTick()
		}
		_, err := r.Whack(rng.Intn(domain.GridSize), 0, 0)
		require.NoError(t, err)

		for _, s := range r.Slots() {
			require.GreaterOrEqual(t, s.Health, 0)
			require.LessOrEqual(t, s.Health, s.MaxHealth)
			if s.Health <= 0 {
				require.False(t, s.Active)
			}
		}
	}
}

func TestMiss_PenaltyAndCombo(t *testing.T) {
	rng := &scriptedRand{}
	r, _ := newTestRound(t, rng)
	require.NoError(t, r.Start())

	out, err := r.Miss(10, 20)
	require.NoError(t, err)
	assert.Equal(t, domain.MissMessage, out.Message)
	assert.Equal(t, domain.MissPenalty, out.Points)
	assert.Zero(t, out.Score.Score)
	assert.Equal(t, 1, out.Score.Misses)
	require.Len(t, out.Particles, 1)
	assert.Equal(t, domain.ParticleStyleMiss, out.Particles[0].Style)
	assert.Equal(t, 10, out.Particles[0].X)
	assert.Equal(t, 20, out.Particles[0].Y)

	spawnInto(t, r, rng, 0, 0.1)
	_, err = r.Whack(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Score().Combo)

	_, err = r.Miss(0, 0)
	require.NoError(t, err)
	assert.Zero(t, r.Score().Combo)
	assert.Equal(t, 120, r.Score().Score)
	assert.Equal(t, 1, r.Score().MaxCombo)
}

func TestCountdownTick_FinishesExactlyOnce(t *testing.T) {
	r, _ := newTestRound(t, utils.NewRand(3))
	require.NoError(t, r.Start())
	r.SpawnTick()

	finished := 0
	for i := 0; i < domain.RoundDuration; i++ {
		if r.CountdownTick() {
			finished++
			assert.Equal(t, domain.RoundDuration-1, i)
		}
	}
	assert.Equal(t, 1, finished)
	assert.Equal(t, domain.RoundFinished, r.Status())
	assert.Zero(t, r.TimeLeft())
	assert.Zero(t, activeSlots(r))

	assert.False(t, r.CountdownTick())
	assert.Zero(t, r.TimeLeft())
}

func TestCountdownTick_NoopWhenIdle(t *testing.T) {
	r, _ := newTestRound(t, &scriptedRand{})
	assert.False(t, r.CountdownTick())
	assert.Equal(t, domain.RoundDuration, r.TimeLeft())
}

func TestReplay_KeepsHighScore(t *testing.T) {
	rng := &scriptedRand{}
	r := NewRound(Config{RoundDuration: 1}, domain.FallbackTaunts(), rng)
	require.NoError(t, r.Start())
	spawnInto(t, r, rng, 0, 0.1)
	_, err := r.Whack(0, 0, 0)
	require.NoError(t, err)
	_, err = r.Miss(0, 0)
	require.NoError(t, err)
	high := r.Score().HighScore
	require.Equal(t, 220, high)

	require.True(t, r.CountdownTick())
	require.NoError(t, r.Start())

	score := r.Score()
	assert.Equal(t, domain.ScoreState{HighScore: high}, score)
	assert.Equal(t, 1, r.TimeLeft())
	assert.Equal(t, domain.InitialSpawnInterval, r.SpawnInterval())
	assert.Equal(t, domain.RoundPlaying, r.Status())
}

func TestSlots_BillAmount(t *testing.T) {
	rng := &scriptedRand{}
	r, clock := newTestRound(t, rng)
	require.NoError(t, r.Start())
	spawnInto(t, r, rng, 0, 0.9)
	spawnInto(t, r, rng, 1, 0.1)

	clock.Advance(1200 * time.Millisecond)
	slots := r.Slots()

	assert.Equal(t, 200, slots[0].BillAmount)
	assert.Equal(t, 40, slots[1].BillAmount)
	assert.Zero(t, slots[2].BillAmount)
}

func TestSnapshotAndSummary(t *testing.T) {
	rng := &scriptedRand{}
	r, clock := newTestRound(t, rng)
	require.NoError(t, r.Start())
	spawnInto(t, r, rng, 0, 0.1)
	_, err := r.Whack(0, 0, 0)
	require.NoError(t, err)

	snap := r.Snapshot("s-1", "alice")
	assert.Equal(t, "s-1", snap.SessionID)
	assert.Equal(t, "alice", snap.PlayerName)
	assert.Equal(t, domain.RoundPlaying, snap.Status)
	assert.Equal(t, r.SpawnInterval().Milliseconds(), snap.SpawnInterval)
	assert.Len(t, snap.Slots, domain.GridSize)

	sum := r.Summary("s-1", "alice")
	assert.Equal(t, 220, sum.Score)
	assert.Equal(t, 1, sum.Whacks)
	assert.Equal(t, 200, sum.MoneySaved)
	assert.Equal(t, clock.Now(), sum.FinishedAt)
}
