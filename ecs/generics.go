package ecs

import "github.com/milk9111/tanks/ecs/component"

// Add stores value as e's component of the given kind, replacing any
// previous value.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).Has(e)
}

// Get returns a pointer to e's component. Mutations through the pointer are
// visible to every later reader.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	value, ok := w.store(kind.ID(), false).Get(e).(*T)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}
