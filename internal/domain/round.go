package domain

import "time"

// RoundStatus is the lifecycle state of a round
type RoundStatus string

const (
	RoundIdle     RoundStatus = "IDLE"
	RoundPlaying  RoundStatus = "PLAYING"
	RoundFinished RoundStatus = "FINISHED"
)

// Board and round tuning
const (
	GridSize        = 9
	MaxActiveSlots  = 3
	RoundDuration   = 45 // seconds
	CountdownPeriod = time.Second

	InitialSpawnInterval = 1200 * time.Millisecond
	MinSpawnInterval     = 700 * time.Millisecond
	SpawnIntervalDecay   = 0.998

	// StayActiveChance is the probability that an active slot survives a spawn tick
	StayActiveChance = 0.75

	BillInterval = 500 * time.Millisecond
)

// Scoring constants
const (
	ArmorHitPoints   = 50
	MissPenalty      = -100
	ComboBonusFactor = 0.1
)

// Feedback messages
const (
	ArmorHeldMessage = "还能抗?!"
	MissMessage      = "打空了!"
)

// Particle styles understood by the client
const (
	ParticleStyleKill  = "kill"
	ParticleStyleArmor = "armor"
	ParticleStyleLoot  = "loot"
	ParticleStyleMiss  = "miss"
)

// Slot is one position of the board
type Slot struct {
	ID         int       `json:"id"`
	Active     bool      `json:"active"`
	Archetype  Archetype `json:"archetype"`
	Health     int       `json:"health"`
	MaxHealth  int       `json:"max_health"`
	Taunt      string    `json:"taunt"`
	Subtitle   string    `json:"subtitle"`
	BillAmount int       `json:"bill_amount"`
	Generation int       `json:"generation"`
	SpawnedAt  time.Time `json:"-"`
}

// ScoreState holds the score counters of a session
type ScoreState struct {
	Score      int `json:"score"`
	HighScore  int `json:"high_score"`
	Whacks     int `json:"whacks"`
	Misses     int `json:"misses"`
	Combo      int `json:"combo"`
	MaxCombo   int `json:"max_combo"`
	MoneySaved int `json:"money_saved"`
}

// Particle is a floating-text effect descriptor positioned in board coordinates
type Particle struct {
	ID    string `json:"id"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Text  string `json:"text"`
	Style string `json:"style"`
}

// HitOutcome describes the result of a whack on an active slot
type HitOutcome struct {
	SlotID     int        `json:"slot_id"`
	Archetype  Archetype  `json:"archetype"`
	Killed     bool       `json:"killed"`
	Message    string     `json:"message"`
	RawPoints  int        `json:"raw_points"`
	Points     int        `json:"points"`
	MoneySaved int        `json:"money_saved"`
	Health     int        `json:"health"`
	Score      ScoreState `json:"score"`
	Particles  []Particle `json:"particles"`
}

// MissOutcome describes the result of a click on empty board space
type MissOutcome struct {
	Message   string     `json:"message"`
	Points    int        `json:"points"`
	Score     ScoreState `json:"score"`
	Particles []Particle `json:"particles"`
}

// RoundSnapshot is a read-only copy of a round's observable state
type RoundSnapshot struct {
	SessionID     string      `json:"session_id"`
	PlayerName    string      `json:"player_name,omitempty"`
	Status        RoundStatus `json:"status"`
	TimeLeft      int         `json:"time_left"`
	SpawnInterval int64       `json:"spawn_interval_ms"`
	Slots         []Slot      `json:"slots"`
	Score         ScoreState  `json:"score"`
}

// RoundSummary is produced once when a round finishes
type RoundSummary struct {
	ID         int64     `json:"id,omitempty"`
	SessionID  string    `json:"session_id"`
	PlayerName string    `json:"player_name"`
	Score      int       `json:"score"`
	Whacks     int       `json:"whacks"`
	Misses     int       `json:"misses"`
	MaxCombo   int       `json:"max_combo"`
	MoneySaved int       `json:"money_saved"`
	FinishedAt time.Time `json:"finished_at"`
}

// LeaderboardEntry is one ranked row of the archived round leaderboard
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	RoundSummary
}
