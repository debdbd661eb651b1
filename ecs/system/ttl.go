package system

import (
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// TTLSystem counts TTL components down by the frame delta and destroys
// entities whose time has run out. It runs before anything that spawns TTL
// entities so a zero TTL survives one draw.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Time().Delta
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})
}
