package archive

import (
	"context"
	"sort"
	"sync"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
)

// Repository stores finished round summaries
type Repository interface {
	// SaveRound stores a summary and returns it with its assigned ID
	SaveRound(ctx context.Context, summary domain.RoundSummary) (domain.RoundSummary, error)
	// TopScores returns at most limit summaries ordered by score, best first
	TopScores(ctx context.Context, limit int) ([]domain.RoundSummary, error)
}

// MemoryRepository keeps summaries in process memory. Once capacity is
// reached the lowest score is evicted.
type MemoryRepository struct {
	mu       sync.RWMutex
	rounds   []domain.RoundSummary
	nextID   int64
	capacity int
}

// NewMemoryRepository creates an empty in-memory archive
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryRepository{capacity: capacity}
}

// SaveRound stores a summary
func (r *MemoryRepository) SaveRound(ctx context.Context, summary domain.RoundSummary) (domain.RoundSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.RoundSummary{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	summary.ID = r.nextID

	i := sort.Search(len(r.rounds), func(i int) bool { return less(summary, r.rounds[i]) })
	r.rounds = append(r.rounds, domain.RoundSummary{})
	copy(r.rounds[i+1:], r.rounds[i:])
	r.rounds[i] = summary

	if len(r.rounds) > r.capacity {
		r.rounds = r.rounds[:r.capacity]
	}
	return summary, nil
}

// TopScores returns the best rounds
func (r *MemoryRepository) TopScores(ctx context.Context, limit int) ([]domain.RoundSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit > len(r.rounds) {
		limit = len(r.rounds)
	}
	out := make([]domain.RoundSummary, limit)
	copy(out, r.rounds[:limit])
	return out, nil
}

// less orders by score descending, then earliest finish, then insertion
func less(a, b domain.RoundSummary) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.FinishedAt.Equal(b.FinishedAt) {
		return a.FinishedAt.Before(b.FinishedAt)
	}
	return a.ID < b.ID
}
