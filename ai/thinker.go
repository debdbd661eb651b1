package ai

import "log"

const (
	otherwise = -1
	noChoice  = -2
)

// Thinker scores its choices every tick and keeps the picked action running.
// When another choice is picked, the running action is cancelled and the new
// one only starts after the old one has reported Success or Failure. When
// nothing is picked the running action carries on until it finishes.
type Thinker[C any] struct {
	Label     string
	Picker    Picker
	Choices   []Choice[C]
	Otherwise ActionBuilder[C]

	// Debug logs action transitions.
	Debug bool

	scores  []Score
	current Action[C]
	choice  int
	state   ActionState
}

func NewThinker[C any](label string, picker Picker) *Thinker[C] {
	return &Thinker[C]{Label: label, Picker: picker, choice: noChoice}
}

// When adds a choice and returns the thinker for chaining.
func (t *Thinker[C]) When(label string, scorer Scorer[C], build ActionBuilder[C]) *Thinker[C] {
	t.Choices = append(t.Choices, Choice[C]{Label: label, Scorer: scorer, Build: build})
	return t
}

// Tick evaluates every scorer, reconciles the running action with the pick
// and advances it once.
func (t *Thinker[C]) Tick(ctx C) {
	if cap(t.scores) < len(t.Choices) {
		t.scores = make([]Score, len(t.Choices))
	}
	t.scores = t.scores[:len(t.Choices)]
	for i, c := range t.Choices {
		if c.Scorer == nil {
			t.scores[i] = 0
			continue
		}
		t.scores[i] = c.Scorer.Score(ctx)
	}

	target := t.pick()

	if t.current != nil && t.state.Done() {
		t.clear()
	}
	if t.current != nil && target != noChoice && t.choice != target && t.state != Cancelled {
		t.transition(Cancelled)
	}
	if t.current == nil && target != noChoice {
		build := t.Otherwise
		if target >= 0 {
			build = t.Choices[target].Build
		}
		if build != nil {
			t.current = build()
			t.choice = target
			t.transition(Requested)
		}
	}
	if t.current != nil {
		t.transition(t.current.Tick(ctx, t.state))
	}
}

func (t *Thinker[C]) pick() int {
	if t.Picker != nil {
		if i, ok := t.Picker.Pick(t.scores); ok && i >= 0 && i < len(t.Choices) {
			return i
		}
	}
	if t.Otherwise != nil {
		return otherwise
	}
	return noChoice
}

func (t *Thinker[C]) transition(next ActionState) {
	if next == t.state {
		return
	}
	if t.Debug {
		log.Printf("ai: %s: %s %s -> %s", t.Label, t.CurrentLabel(), t.state, next)
	}
	t.state = next
}

func (t *Thinker[C]) clear() {
	t.current = nil
	t.choice = noChoice
	t.state = Init
}

// Scores returns the scores from the last tick, one per choice.
func (t *Thinker[C]) Scores() []Score {
	return t.scores
}

// Current returns the running action and its state.
func (t *Thinker[C]) Current() (Action[C], ActionState) {
	return t.current, t.state
}

// CurrentLabel names the running choice, "otherwise", or "".
func (t *Thinker[C]) CurrentLabel() string {
	switch {
	case t.current == nil:
		return ""
	case t.choice == otherwise:
		return "otherwise"
	case t.choice >= 0 && t.choice < len(t.Choices):
		return t.Choices[t.choice].Label
	}
	return ""
}
