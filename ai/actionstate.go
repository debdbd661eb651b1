// Package ai is a small utility AI: scorers rate choices, a picker selects
// one, and a thinker drives the chosen action through its ActionState.
package ai

//go:generate stringer -type=ActionState

// ActionState is the lifecycle of a running action. A thinker requests an
// action, the action moves itself to Executing and eventually to Success or
// Failure. Cancelled is set by the thinker; the action must answer it with
// Success or Failure.
type ActionState int

const (
	Init ActionState = iota
	Requested
	Executing
	Cancelled
	Success
	Failure
)

// Done reports whether the action has finished.
func (s ActionState) Done() bool {
	return s == Success || s == Failure
}
