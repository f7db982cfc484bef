package archive

import (
	"context"
	"fmt"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/logger"
	"github.com/osse101/WhackALawyer_Go/internal/metrics"
	"github.com/osse101/WhackALawyer_Go/internal/worker"
)

// Service records finished rounds and serves the leaderboard
type Service struct {
	repo Repository
}

// NewService creates a new archive service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record archives one round summary
func (s *Service) Record(ctx context.Context, summary domain.RoundSummary) error {
	log := logger.FromContext(ctx)

	saved, err := s.repo.SaveRound(ctx, summary)
	if err != nil {
		metrics.ArchiveWrites.WithLabelValues(metrics.ResultError).Inc()
		log.Error(LogMsgRoundArchiveFailed, "session_id", summary.SessionID, "error", err)
		return fmt.Errorf("failed to archive round: %w", err)
	}

	metrics.ArchiveWrites.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info(LogMsgRoundArchived, "id", saved.ID, "session_id", saved.SessionID, "score", saved.Score)
	return nil
}

// RecordJob wraps Record as a worker pool job
func (s *Service) RecordJob(summary domain.RoundSummary) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		return s.Record(ctx, summary)
	})
}

// Leaderboard returns the ranked best rounds. A zero limit means DefaultLimit.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, fmt.Errorf("%w: must be between 1 and %d", domain.ErrInvalidLimit, MaxLimit)
	}

	rounds, err := s.repo.TopScores(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(rounds))
	for i, r := range rounds {
		entries = append(entries, domain.LeaderboardEntry{Rank: i + 1, RoundSummary: r})
	}
	return entries, nil
}

// RefreshGauges recomputes the leaderboard metrics from the archive
func (s *Service) RefreshGauges(ctx context.Context) error {
	top, err := s.repo.TopScores(ctx, 1)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgRefreshFailed, "error", err)
		return fmt.Errorf("failed to refresh leaderboard: %w", err)
	}
	best := 0
	if len(top) > 0 {
		best = top[0].Score
	}
	metrics.LeaderboardTopScore.Set(float64(best))
	return nil
}

// RefreshJob wraps RefreshGauges as a worker pool job
func (s *Service) RefreshJob() worker.Job {
	return worker.JobFunc(s.RefreshGauges)
}
