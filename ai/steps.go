package ai

// Steps runs its children in order. It fails as soon as a child fails and
// succeeds when the last child succeeds. Cancelling Steps cancels the running
// child and fails once the child has finished.
type Steps[C any] struct {
	Label    string
	Children []ActionBuilder[C]

	index      int
	child      Action[C]
	childState ActionState
}

// NewSteps returns a builder for a Steps action over children.
func NewSteps[C any](label string, children ...ActionBuilder[C]) ActionBuilder[C] {
	return func() Action[C] {
		return &Steps[C]{Label: label, Children: children}
	}
}

// Index is the position of the running child.
func (s *Steps[C]) Index() int {
	return s.index
}

func (s *Steps[C]) Tick(ctx C, state ActionState) ActionState {
	switch state {
	case Requested:
		if len(s.Children) == 0 {
			return Success
		}
		s.start(0)
	case Executing:
		if s.child == nil {
			return Failure
		}
	case Cancelled:
		if s.child != nil && !s.childState.Done() {
			s.childState = s.child.Tick(ctx, Cancelled)
		}
		if s.child == nil || s.childState.Done() {
			return Failure
		}
		return Cancelled
	default:
		return state
	}

	s.childState = s.child.Tick(ctx, s.childState)
	switch s.childState {
	case Success:
		if s.index+1 >= len(s.Children) {
			return Success
		}
		s.start(s.index + 1)
	case Failure:
		return Failure
	}
	return Executing
}

func (s *Steps[C]) start(i int) {
	s.index = i
	s.child = s.Children[i]()
	s.childState = Requested
}
