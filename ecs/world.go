package ecs

import "github.com/milk9111/tanks/ecs/component"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// Time is the frame clock shared by all systems.
type Time struct {
	Delta   float64
	Elapsed float64
	Frame   uint64
}

// World owns entities, component stores, events and the frame clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	time     Time
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot. It reports
// whether e was alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return CreateEntity(w)
}

// DestroyEntity removes e and its components.
func (w *World) DestroyEntity(e Entity) bool {
	return DestroyEntity(w, e)
}

// IsAlive reports whether e is a live handle.
func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Time returns the current frame clock.
func (w *World) Time() Time {
	if w == nil {
		return Time{}
	}
	return w.time
}

// Advance moves the frame clock forward by dt seconds.
func (w *World) Advance(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.time.Delta = dt
	w.time.Elapsed += dt
	w.time.Frame++
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s := w.stores[id]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
