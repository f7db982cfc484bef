package game

import (
	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/utils"
)

// FinalPoints applies the combo multiplier to a hit's raw points
func FinalPoints(rawPoints, combo int) int {
	return utils.FloorInt(float64(rawPoints) * (1 + domain.ComboBonusFactor*float64(combo)))
}

// Score aggregates the score counters of one session
type Score struct {
	state domain.ScoreState
}

// Reset zeroes every counter except the high score
func (s *Score) Reset() {
	s.state = domain.ScoreState{HighScore: s.state.HighScore}
}

// ApplyHit extends the combo and awards rawPoints scaled by the new combo.
// It returns the points actually added.
func (s *Score) ApplyHit(rawPoints, saved int) int {
	s.state.Whacks++
	s.state.Combo++
	if s.state.Combo > s.state.MaxCombo {
		s.state.MaxCombo = s.state.Combo
	}

	points := FinalPoints(rawPoints, s.state.Combo)
	s.state.Score = utils.ClampMin(s.state.Score+points, 0)
	s.state.MoneySaved += saved
	s.updateHighScore()
	return points
}

// ApplyMiss breaks the combo and applies the miss penalty with multiplier 1
func (s *Score) ApplyMiss() int {
	s.state.Misses++
	s.state.Combo = 0
	s.state.Score = utils.ClampMin(s.state.Score+domain.MissPenalty, 0)
	s.updateHighScore()
	return domain.MissPenalty
}

func (s *Score) updateHighScore() {
	if s.state.Score > s.state.HighScore {
		s.state.HighScore = s.state.Score
	}
}

// State returns a copy of the counters
func (s *Score) State() domain.ScoreState {
	return s.state
}
