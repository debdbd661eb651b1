package ai

import "math"

// Score is a utility value in [0, 1].
type Score float64

// ScoreOf clamps v into [0, 1].
func ScoreOf(v float64) Score {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return Score(v)
}

func (s Score) Value() float64 {
	return float64(s)
}

// Scorer rates how much an actor wants a choice.
type Scorer[C any] interface {
	Score(ctx C) Score
}

// ScorerFunc adapts a function to a Scorer. The result is clamped.
type ScorerFunc[C any] func(ctx C) float64

func (f ScorerFunc[C]) Score(ctx C) Score {
	return ScoreOf(f(ctx))
}
