package system

import (
	"math"

	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// LookAtSystem turns LookAt entities towards the cursor.
type LookAtSystem struct{}

func NewLookAtSystem() *LookAtSystem {
	return &LookAtSystem{}
}

func (s *LookAtSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	cx, cy, ok := CursorWorld(w)
	if !ok {
		return
	}
	ecs.ForEach3(w, component.LookAtComponent.Kind(), component.TransformComponent.Kind(), component.GlobalTransformComponent.Kind(), func(_ ecs.Entity, _ *component.LookAt, t *component.Transform, g *component.GlobalTransform) {
		t.Rotation = LookAtRotation(*t, *g, cx, cy)
	})
}

// LookAtRotation returns the local rotation that makes the global rotation
// point from the global position at (tx, ty).
func LookAtRotation(local component.Transform, global component.GlobalTransform, tx, ty float64) float64 {
	angle := math.Atan2(ty-global.Y, tx-global.X)
	parentRotation := global.Rotation - local.Rotation
	return angle - parentRotation
}
