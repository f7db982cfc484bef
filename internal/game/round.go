package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/utils"
)

// Config tunes a round
type Config struct {
	// RoundDuration is the countdown length in seconds
	RoundDuration int
	// Clock returns the current time; defaults to time.Now
	Clock func() time.Time
}

// DefaultConfig returns the standard round tuning
func DefaultConfig() Config {
	return Config{RoundDuration: domain.RoundDuration, Clock: time.Now}
}

// Round is the state of one player's board. It is not safe for concurrent
// use; the owning session serializes every call.
type Round struct {
	status     domain.RoundStatus
	timeLeft   int
	interval   time.Duration
	slots      [domain.GridSize]domain.Slot
	generation int
	score      Score

	duration int
	taunts   domain.TauntTable
	rng      utils.Rand
	now      func() time.Time
}

// NewRound creates an IDLE round with an empty board
func NewRound(cfg Config, taunts domain.TauntTable, rng utils.Rand) *Round {
	if cfg.RoundDuration <= 0 {
		cfg.RoundDuration = domain.RoundDuration
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	r := &Round{
		status:   domain.RoundIdle,
		timeLeft: cfg.RoundDuration,
		interval: domain.InitialSpawnInterval,
		duration: cfg.RoundDuration,
		taunts:   taunts,
		rng:      rng,
		now:      cfg.Clock,
	}
	r.clearBoard()
	return r
}

// Status returns the lifecycle state
func (r *Round) Status() domain.RoundStatus {
	return r.status
}

// TimeLeft returns the remaining seconds
func (r *Round) TimeLeft() int {
	return r.timeLeft
}

// SpawnInterval returns the delay before the next spawn tick
func (r *Round) SpawnInterval() time.Duration {
	return r.interval
}

// Score returns a copy of the score counters
func (r *Round) Score() domain.ScoreState {
	return r.score.State()
}

// Start moves an IDLE or FINISHED round to PLAYING and resets it
func (r *Round) Start() error {
	if r.status == domain.RoundPlaying {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, r.status, domain.RoundPlaying)
	}
	r.status = domain.RoundPlaying
	r.timeLeft = r.duration
	r.interval = domain.InitialSpawnInterval
	r.clearBoard()
	r.score.Reset()
	return nil
}

// SpawnTick hides some active lawyers, spawns at most one new lawyer and
// shortens the spawn interval. It does nothing unless the round is PLAYING.
func (r *Round) SpawnTick() {
	if r.status != domain.RoundPlaying {
		return
	}

	for i := range r.slots {
		if r.slots[i].Active && r.rng.Float64() >= domain.StayActiveChance {
			r.deactivate(i)
		}
	}

	if r.activeCount() < domain.MaxActiveSlots {
		empty := r.emptySlots()
		if len(empty) > 0 {
			r.spawn(empty[r.rng.Intn(len(empty))])
		}
	}

	r.interval = utils.DecayDuration(r.interval, domain.SpawnIntervalDecay, domain.MinSpawnInterval)
}

// CountdownTick takes one second off the clock. It reports true exactly once,
// on the tick that finishes the round.
func (r *Round) CountdownTick() bool {
	if r.status != domain.RoundPlaying {
		return false
	}
	r.timeLeft--
	if r.timeLeft > 0 {
		return false
	}
	r.timeLeft = 0
	r.status = domain.RoundFinished
	r.clearBoard()
	return true
}

// Whack resolves a click on a slot. A click on an inactive slot returns a nil
// outcome and changes nothing.
func (r *Round) Whack(slotID, x, y int) (*domain.HitOutcome, error) {
	if slotID < 0 || slotID >= domain.GridSize {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidSlot, slotID)
	}
	if r.status != domain.RoundPlaying {
		return nil, domain.ErrRoundNotPlaying
	}

	slot := &r.slots[slotID]
	if !slot.Active || slot.Health <= 0 {
		return nil, nil
	}

	profile := slot.Archetype.Profile()
	slot.Health--

	outcome := &domain.HitOutcome{
		SlotID:    slotID,
		Archetype: slot.Archetype,
		Health:    slot.Health,
	}

	if slot.Health <= 0 {
		outcome.Killed = true
		outcome.Message = profile.KillMessage
		outcome.RawPoints = profile.KillPoints
		outcome.MoneySaved = profile.KillSaved
		outcome.Points = r.score.ApplyHit(profile.KillPoints, profile.KillSaved)
		outcome.Particles = killParticles(profile, x, y)
		r.deactivate(slotID)
	} else {
		outcome.Message = domain.ArmorHeldMessage
		outcome.RawPoints = domain.ArmorHitPoints
		outcome.Points = r.score.ApplyHit(domain.ArmorHitPoints, 0)
		outcome.Particles = []domain.Particle{
			newParticle(x, y+ArmorTextOffsetY, domain.ArmorHeldMessage, domain.ParticleStyleArmor),
		}
	}

	outcome.Score = r.score.State()
	return outcome, nil
}

// Miss resolves a click on empty board space
func (r *Round) Miss(x, y int) (*domain.MissOutcome, error) {
	if r.status != domain.RoundPlaying {
		return nil, domain.ErrRoundNotPlaying
	}
	points := r.score.ApplyMiss()
	return &domain.MissOutcome{
		Message: domain.MissMessage,
		Points:  points,
		Score:   r.score.State(),
		Particles: []domain.Particle{
			newParticle(x, y, domain.MissMessage, domain.ParticleStyleMiss),
		},
	}, nil
}

// Slots returns a copy of the board with bill amounts filled in
func (r *Round) Slots() []domain.Slot {
	now := r.now()
	out := make([]domain.Slot, domain.GridSize)
	for i, s := range r.slots {
		if s.Active {
			s.BillAmount = billAmount(s, now)
		}
		out[i] = s
	}
	return out
}

// Snapshot returns a read-only copy of the observable state
func (r *Round) Snapshot(sessionID, playerName string) domain.RoundSnapshot {
	return domain.RoundSnapshot{
		SessionID:     sessionID,
		PlayerName:    playerName,
		Status:        r.status,
		TimeLeft:      r.timeLeft,
		SpawnInterval: r.interval.Milliseconds(),
		Slots:         r.Slots(),
		Score:         r.score.State(),
	}
}

// Summary describes the round for the archive
func (r *Round) Summary(sessionID, playerName string) domain.RoundSummary {
	s := r.score.State()
	return domain.RoundSummary{
		SessionID:  sessionID,
		PlayerName: playerName,
		Score:      s.Score,
		Whacks:     s.Whacks,
		Misses:     s.Misses,
		MaxCombo:   s.MaxCombo,
		MoneySaved: s.MoneySaved,
		FinishedAt: r.now().UTC(),
	}
}

func (r *Round) spawn(i int) {
	archetype := r.rollArchetype()
	profile := archetype.Profile()
	r.generation++
	r.slots[i] = domain.Slot{
		ID:         i,
		Active:     true,
		Archetype:  archetype,
		Health:     profile.MaxHealth,
		MaxHealth:  profile.MaxHealth,
		Taunt:      r.pickTaunt(archetype),
		Subtitle:   profile.Subtitle,
		Generation: r.generation,
		SpawnedAt:  r.now(),
	}
}

func (r *Round) rollArchetype() domain.Archetype {
	roll := r.rng.Float64()
	switch {
	case roll > BillerThreshold:
		return domain.ArchetypeBiller
	case roll > AggressorThreshold:
		return domain.ArchetypeAggressor
	case roll > PedantThreshold:
		return domain.ArchetypePedant
	default:
		return domain.ArchetypeStaller
	}
}

func (r *Round) pickTaunt(a domain.Archetype) string {
	pool := r.taunts.Pool(a)
	if len(pool) == 0 {
		return domain.DefaultTaunt
	}
	return pool[r.rng.Intn(len(pool))]
}

func (r *Round) deactivate(i int) {
	slot := &r.slots[i]
	slot.Active = false
	slot.Health = 0
	slot.BillAmount = 0
	slot.SpawnedAt = time.Time{}
}

func (r *Round) clearBoard() {
	for i := range r.slots {
		r.slots[i] = domain.Slot{ID: i}
	}
}

func (r *Round) activeCount() int {
	n := 0
	for _, s := range r.slots {
		if s.Active {
			n++
		}
	}
	return n
}

func (r *Round) emptySlots() []int {
	empty := make([]int, 0, domain.GridSize)
	for i, s := range r.slots {
		if !s.Active {
			empty = append(empty, i)
		}
	}
	return empty
}

func billAmount(s domain.Slot, now time.Time) int {
	if s.SpawnedAt.IsZero() || now.Before(s.SpawnedAt) {
		return 0
	}
	ticks := int(now.Sub(s.SpawnedAt) / domain.BillInterval)
	return ticks * s.Archetype.Profile().BillRate
}

func killParticles(p domain.ArchetypeProfile, x, y int) []domain.Particle {
	particles := []domain.Particle{
		newParticle(x, y+KillTextOffsetY, p.KillMessage, domain.ParticleStyleKill),
	}
	switch len(p.Loot) {
	case 0:
	case 1:
		particles = append(particles, newParticle(x, y, p.Loot[0], domain.ParticleStyleLoot))
	default:
		particles = append(particles,
			newParticle(x+LootSpreadX, y, p.Loot[0], domain.ParticleStyleLoot),
			newParticle(x-LootSpreadX, y, p.Loot[1], domain.ParticleStyleLoot),
		)
	}
	return particles
}

func newParticle(x, y int, text, style string) domain.Particle {
	return domain.Particle{ID: uuid.NewString(), X: x, Y: y, Text: text, Style: style}
}
