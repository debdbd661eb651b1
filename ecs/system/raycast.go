package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

const (
	DefaultImpulseStrength = 100.0
	rayStartOffset         = 30.0
	cursorMarkLength       = 10.0
)

// Raycaster is the physics query the raycast system needs.
type Raycaster interface {
	CastRay(originX, originY, dirX, dirY, maxToi float64, solid bool, exclude ecs.Entity) (ecs.Entity, float64, bool)
}

// RaycastSystem shoots a ray from every player towards the cursor on each
// mouse press and pushes whatever it hits.
type RaycastSystem struct {
	physics Raycaster

	// Buttons that fire. Empty means any button.
	Buttons         []ebiten.MouseButton
	ImpulseStrength float64
}

func NewRaycastSystem(physics Raycaster, buttons ...ebiten.MouseButton) *RaycastSystem {
	return &RaycastSystem{
		physics:         physics,
		Buttons:         buttons,
		ImpulseStrength: DefaultImpulseStrength,
	}
}

// Ray is a player ray towards a target point.
type Ray struct {
	OriginX, OriginY float64
	DirX, DirY       float64
	MaxToi           float64
}

// RayTowards builds the ray from a player at (px, py) to (tx, ty). The origin
// is pushed out along the ray so it starts outside the player's body.
func RayTowards(px, py, tx, ty float64) (Ray, bool) {
	diffX, diffY := tx-px, ty-py
	dirX, dirY := common.Normalize(diffX, diffY)
	if dirX == 0 && dirY == 0 {
		return Ray{}, false
	}
	return Ray{
		OriginX: px + dirX*rayStartOffset,
		OriginY: py + dirY*rayStartOffset,
		DirX:    dirX,
		DirY:    dirY,
		MaxToi:  math.Hypot(diffX, diffY),
	}, true
}

func (s *RaycastSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.physics == nil {
		return
	}
	in := CurrentInput(w)
	cx, cy, ok := CursorWorld(w)
	if !ok {
		return
	}

	for _, button := range in.AnyPressed() {
		if !s.fires(button) {
			continue
		}
		SpawnDebugLine(w, cx, cy, cx+cursorMarkLength, cy, 0)

		ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(shooter ecs.Entity, _ *component.Player, t *component.Transform) {
			ray, ok := RayTowards(t.X, t.Y, cx, cy)
			if !ok {
				return
			}
			SpawnDebugLine(w, ray.OriginX, ray.OriginY, ray.OriginX+ray.DirX*ray.MaxToi, ray.OriginY+ray.DirY*ray.MaxToi, 0)

			target, toi, hit := s.physics.CastRay(ray.OriginX, ray.OriginY, ray.DirX, ray.DirY, ray.MaxToi, true, shooter)
			if !hit {
				return
			}
			hitX, hitY := ray.OriginX+ray.DirX*toi, ray.OriginY+ray.DirY*toi
			_ = ecs.Add(w, target, component.ExternalImpulseComponent.Kind(), &component.ExternalImpulse{
				X:       ray.DirX * s.ImpulseStrength,
				Y:       ray.DirY * s.ImpulseStrength,
				PointX:  hitX,
				PointY:  hitY,
				AtPoint: true,
			})
			w.Events().Push(ecs.Event{Type: ecs.EventRaycastHit, Data: ecs.RaycastHit{
				Shooter: shooter,
				Target:  target,
				X:       hitX,
				Y:       hitY,
				Toi:     toi,
			}})
		})
	}
}

func (s *RaycastSystem) fires(b ebiten.MouseButton) bool {
	if len(s.Buttons) == 0 {
		return true
	}
	for _, want := range s.Buttons {
		if want == b {
			return true
		}
	}
	return false
}
