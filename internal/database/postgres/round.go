package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
)

const insertRoundSQL = `
INSERT INTO round_summaries (session_id, player_name, score, whacks, misses, max_combo, money_saved, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING round_id`

const topRoundsSQL = `
SELECT round_id, session_id, player_name, score, whacks, misses, max_combo, money_saved, finished_at
FROM round_summaries
ORDER BY score DESC, finished_at ASC, round_id ASC
LIMIT $1`

// RoundRepository archives round summaries in Postgres
type RoundRepository struct {
	db *pgxpool.Pool
}

// NewRoundRepository creates a new round repository
func NewRoundRepository(db *pgxpool.Pool) *RoundRepository {
	return &RoundRepository{db: db}
}

// SaveRound inserts a summary and returns it with its generated ID
func (r *RoundRepository) SaveRound(ctx context.Context, s domain.RoundSummary) (domain.RoundSummary, error) {
	err := r.db.QueryRow(ctx, insertRoundSQL,
		s.SessionID, s.PlayerName, s.Score, s.Whacks, s.Misses, s.MaxCombo, s.MoneySaved, s.FinishedAt,
	).Scan(&s.ID)
	if err != nil {
		return domain.RoundSummary{}, fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToInsertRound, err)
	}
	return s, nil
}

// TopScores returns the best rounds, ties broken by earliest finish
func (r *RoundRepository) TopScores(ctx context.Context, limit int) ([]domain.RoundSummary, error) {
	rows, err := r.db.Query(ctx, topRoundsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToQueryTop, err)
	}

	rounds, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RoundSummary, error) {
		var s domain.RoundSummary
		err := row.Scan(&s.ID, &s.SessionID, &s.PlayerName, &s.Score, &s.Whacks, &s.Misses, &s.MaxCombo, &s.MoneySaved, &s.FinishedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToScanRound, err)
	}

	for i := range rounds {
		rounds[i].FinishedAt = rounds[i].FinishedAt.UTC()
	}
	return rounds, nil
}
