package system

import (
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// PlayerMovementSystem drives players from the movement keys.
type PlayerMovementSystem struct{}

func NewPlayerMovementSystem() *PlayerMovementSystem {
	return &PlayerMovementSystem{}
}

// MoveDirection is the normalised movement input. Up is -Y.
func MoveDirection(in *component.Input) (float64, float64) {
	return common.Normalize(in.MoveX, in.MoveY)
}

func (s *PlayerMovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dx, dy := MoveDirection(CurrentInput(w))
	dt := w.Time().Delta

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, t *component.Transform) {
		p.Clamp()
		switch p.Mode {
		case component.MoveTranslate:
			t.X += dx * p.Speed * dt
			t.Y += dy * p.Speed * dt
		default:
			v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
			if !ok {
				v = &component.Velocity{}
				_ = ecs.Add(w, e, component.VelocityComponent.Kind(), v)
			}
			v.X, v.Y = dx*p.Speed, dy*p.Speed
		}
	})

	ecs.ForEach2(w, component.PlayerPullComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, p *component.PlayerPull, v *component.Velocity) {
		v.X, v.Y = PullVelocity(dx, dy, p.Speed, dt)
	})
}

// PullVelocity scales the pull speed by frame time.
func PullVelocity(dx, dy, speed, dt float64) (float64, float64) {
	return dx * speed * dt, dy * speed * dt
}
