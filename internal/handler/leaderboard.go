package handler

import (
	"context"
	"net/http"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
)

// LeaderboardService serves archived top rounds
type LeaderboardService interface {
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// LeaderboardResponse wraps the ranked rounds
type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// HandleGetLeaderboard returns the best archived rounds
// @Summary Leaderboard
// @Description Archived top rounds across all sessions
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Number of rounds (1-100, default 10)"
// @Success 200 {object} LeaderboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/leaderboard [get]
func HandleGetLeaderboard(svc LeaderboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetOptionalIntQueryParam(r, w, "limit", 0, ErrMsgInvalidLimit)
		if !ok {
			return
		}

		entries, err := svc.Leaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, OpGetLeaderboard, err)
			return
		}
		respondJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
	}
}
