package system

import (
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

const maxHierarchyDepth = 32

// HierarchySystem despawns children of destroyed parents and propagates
// transforms into GlobalTransform.
type HierarchySystem struct{}

func NewHierarchySystem() *HierarchySystem {
	return &HierarchySystem{}
}

func (h *HierarchySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	DespawnOrphans(w)

	globals := make(map[ecs.Entity]component.GlobalTransform)
	for _, e := range w.Query(component.TransformComponent.Kind()) {
		globalOf(w, e, globals, 0)
	}
	for e, g := range globals {
		if gt, ok := ecs.Get(w, e, component.GlobalTransformComponent.Kind()); ok {
			*gt = g
			continue
		}
		_ = ecs.Add(w, e, component.GlobalTransformComponent.Kind(), &g)
	}
}

// DespawnOrphans destroys every entity whose parent is gone, repeating until
// whole subtrees are removed.
func DespawnOrphans(w *ecs.World) {
	for {
		removed := 0
		ecs.ForEach(w, component.ParentComponent.Kind(), func(e ecs.Entity, p *component.Parent) {
			if !w.IsAlive(ecs.Entity(p.Entity)) {
				w.DestroyEntity(e)
				removed++
			}
		})
		if removed == 0 {
			return
		}
	}
}

// DespawnRecursive destroys e and all of its descendants.
func DespawnRecursive(w *ecs.World, e ecs.Entity) {
	if !w.DestroyEntity(e) {
		return
	}
	DespawnOrphans(w)
}

// ComposeTransform places a local transform inside its parent's global
// transform.
func ComposeTransform(parent component.GlobalTransform, local component.Transform) component.GlobalTransform {
	lsx, lsy := scaleOr1(local.ScaleX), scaleOr1(local.ScaleY)
	psx, psy := scaleOr1(parent.ScaleX), scaleOr1(parent.ScaleY)
	rx, ry := common.Rotate(local.X*psx, local.Y*psy, parent.Rotation)
	return component.GlobalTransform{
		X:        parent.X + rx,
		Y:        parent.Y + ry,
		Z:        parent.Z + local.Z,
		ScaleX:   psx * lsx,
		ScaleY:   psy * lsy,
		Rotation: parent.Rotation + local.Rotation,
	}
}

func globalOf(w *ecs.World, e ecs.Entity, cache map[ecs.Entity]component.GlobalTransform, depth int) component.GlobalTransform {
	if g, ok := cache[e]; ok {
		return g
	}

	var local component.Transform
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		local = *t
	}

	parent := component.GlobalTransform{ScaleX: 1, ScaleY: 1}
	if p, ok := ecs.Get(w, e, component.ParentComponent.Kind()); ok && depth < maxHierarchyDepth {
		pe := ecs.Entity(p.Entity)
		if w.IsAlive(pe) && pe != e {
			parent = globalOf(w, pe, cache, depth+1)
		}
	}

	g := ComposeTransform(parent, local)
	cache[e] = g
	return g
}

func scaleOr1(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
