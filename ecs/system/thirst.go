package system

import (
	"math"

	"github.com/milk9111/tanks/ai"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// MaxDrinkDistance is how close an actor must be to a water source to drink.
const MaxDrinkDistance = 0.1

// ThirstSystem makes every Thirst grow with time.
type ThirstSystem struct{}

func NewThirstSystem() *ThirstSystem {
	return &ThirstSystem{}
}

func (s *ThirstSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Time().Delta
	ecs.ForEach(w, component.ThirstComponent.Kind(), func(_ ecs.Entity, t *component.Thirst) {
		GrowThirst(t, dt)
	})
}

// GrowThirst adds PerSecond*dt and keeps the level in [0, MaxThirst].
func GrowThirst(t *component.Thirst, dt float64) {
	t.Thirst = common.Clamp(t.Thirst+t.PerSecond*dt, 0, component.MaxThirst)
}

// DrinkWater moves amount from the source into the actor. The source shape
// shrinks with its capacity. It reports whether the source is empty.
func DrinkWater(amount float64, thirst *component.Thirst, source *component.WaterSource, shape *component.Shape) bool {
	thirst.Thirst -= amount
	source.Capacity -= amount
	if shape != nil {
		shape.Radius = source.Capacity
	}
	if thirst.Thirst <= 0 {
		thirst.Thirst = 0
	}
	return source.Capacity <= 0
}

// ThirstyScore is the thirst level scaled to [0, 1].
func ThirstyScore(t component.Thirst) float64 {
	return t.Thirst / component.MaxThirst
}

// nearestWaterSource returns the source closest to (x, y) by squared
// distance.
func nearestWaterSource(w *ecs.World, x, y float64) (ecs.Entity, *component.Transform, bool) {
	var (
		best     ecs.Entity
		bestT    *component.Transform
		bestDist = math.Inf(1)
	)
	ecs.ForEach2(w, component.WaterSourceComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.WaterSource, t *component.Transform) {
		dx, dy := t.X-x, t.Y-y
		if d := dx*dx + dy*dy; d < bestDist {
			best, bestT, bestDist = e, t, d
		}
	})
	return best, bestT, bestT != nil
}

// MoveToWaterSource walks the actor to the nearest water source at Speed
// units per second.
type MoveToWaterSource struct {
	Speed float64
}

func (m *MoveToWaterSource) Tick(ctx *AIContext, state ai.ActionState) ai.ActionState {
	switch state {
	case ai.Requested:
		return ai.Executing
	case ai.Executing:
		pos, ok := ecs.Get(ctx.World, ctx.Actor, component.TransformComponent.Kind())
		if !ok {
			return ai.Failure
		}
		_, src, ok := nearestWaterSource(ctx.World, pos.X, pos.Y)
		if !ok {
			return ai.Failure
		}
		dx, dy := src.X-pos.X, src.Y-pos.Y
		distance := math.Hypot(dx, dy)
		if distance <= MaxDrinkDistance {
			return ai.Success
		}
		step := math.Min(ctx.Dt*m.Speed, distance)
		pos.X += dx / distance * step
		pos.Y += dy / distance * step
		return ai.Executing
	case ai.Cancelled:
		return ai.Failure
	}
	return state
}

// Drink drinks from the nearest water source when the actor is on it. It
// succeeds only once the actor's thirst is fully quenched.
type Drink struct {
	PerSecond float64
}

func (d *Drink) Tick(ctx *AIContext, state ai.ActionState) ai.ActionState {
	switch state {
	case ai.Requested:
		return ai.Executing
	case ai.Executing:
		w := ctx.World
		pos, ok := ecs.Get(w, ctx.Actor, component.TransformComponent.Kind())
		if !ok {
			return ai.Failure
		}
		thirst, ok := ecs.Get(w, ctx.Actor, component.ThirstComponent.Kind())
		if !ok {
			return ai.Failure
		}
		srcEntity, src, ok := nearestWaterSource(w, pos.X, pos.Y)
		if !ok || math.Hypot(src.X-pos.X, src.Y-pos.Y) >= MaxDrinkDistance {
			return ai.Failure
		}
		source, _ := ecs.Get(w, srcEntity, component.WaterSourceComponent.Kind())
		shape, _ := ecs.Get(w, srcEntity, component.ShapeComponent.Kind())
		if DrinkWater(ctx.Dt*d.PerSecond, thirst, source, shape) {
			DespawnRecursive(w, srcEntity)
			w.Events().Push(ecs.Event{Type: ecs.EventWaterSourceDepleted, Data: srcEntity})
		}
		if thirst.Thirst == 0 {
			return ai.Success
		}
		return ai.Failure
	case ai.Cancelled:
		return ai.Failure
	}
	return state
}
