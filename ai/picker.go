package ai

// Picker selects a choice index from the scores of all choices.
type Picker interface {
	Pick(scores []Score) (int, bool)
}

// FirstToScore picks the first choice whose score reaches Threshold.
type FirstToScore struct {
	Threshold float64
}

func (p FirstToScore) Pick(scores []Score) (int, bool) {
	for i, s := range scores {
		if s.Value() >= p.Threshold {
			return i, true
		}
	}
	return -1, false
}

// Highest picks the choice with the highest non-zero score. Ties go to the
// earlier choice.
type Highest struct{}

func (Highest) Pick(scores []Score) (int, bool) {
	best, idx := Score(0), -1
	for i, s := range scores {
		if s > best {
			best, idx = s, i
		}
	}
	return idx, idx >= 0
}

// HighestToScore is Highest restricted to scores at or above Threshold.
type HighestToScore struct {
	Threshold float64
}

func (p HighestToScore) Pick(scores []Score) (int, bool) {
	idx, ok := Highest{}.Pick(scores)
	if !ok || scores[idx].Value() < p.Threshold {
		return -1, false
	}
	return idx, true
}
