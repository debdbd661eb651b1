package ai

// Action advances one step per tick. It receives the state the thinker holds
// for it and returns the next one.
type Action[C any] interface {
	Tick(ctx C, state ActionState) ActionState
}

// ActionFunc adapts a function to an Action.
type ActionFunc[C any] func(ctx C, state ActionState) ActionState

func (f ActionFunc[C]) Tick(ctx C, state ActionState) ActionState {
	return f(ctx, state)
}

// ActionBuilder creates a fresh action each time a choice is started, so
// actions may keep per-run state.
type ActionBuilder[C any] func() Action[C]

// Choice binds a scorer to the action it starts when picked.
type Choice[C any] struct {
	Label  string
	Scorer Scorer[C]
	Build  ActionBuilder[C]
}
