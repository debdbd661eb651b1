package ecs

import "github.com/milk9111/tanks/ecs/component"

// Query returns the live entities that have every kind, in the dense order
// of the smallest store.
func (w *World) Query(kinds ...component.KindID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	var out []Entity
	for _, e := range smallest.Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		match := true
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity with kind.
func (w *World) First(kind component.KindID) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	for _, e := range w.store(kind.ID(), false).Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// ForEach calls fn for every live entity with kind. Entities destroyed by fn
// are skipped for the rest of the pass.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ka) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ka, kb, kc) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ka, kb, kc, kd) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		d, okD := Get(w, e, kd)
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, a, b, c, d)
	}
}
