package utils

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Rand is the randomness source used by game logic. Tests inject a scripted one.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// Intn returns a value in [0, n)
	Intn(n int) int
}

// lockedRand is a Rand safe for concurrent use
type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRand returns a concurrency-safe Rand. A zero seed uses the current time.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{src: rand.New(rand.NewSource(seed))} //nolint:gosec // Game logic randomness, not security critical
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

func (r *lockedRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

// RandomFloat returns a random float64 between 0.0 and 1.0
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.Intn(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}

// ClampMin returns v, or floor when v is below it
func ClampMin(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

// FloorInt truncates a non-negative product toward negative infinity
func FloorInt(v float64) int {
	return int(math.Floor(v))
}

// DecayDuration multiplies d by factor and clamps the result at floor
func DecayDuration(d time.Duration, factor float64, floor time.Duration) time.Duration {
	next := time.Duration(float64(d) * factor)
	if next < floor {
		return floor
	}
	return next
}
