package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/kamstrup/intmap"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

const (
	// DefaultDensity gives colliders without ColliderMass a mass from their
	// area in square pixels.
	DefaultDensity    = 0.001
	physicsIterations = 10
)

// PhysicsSystem mirrors collider entities into a zero gravity cp.Space and
// steps it with the frame delta.
type PhysicsSystem struct {
	space     *cp.Space
	bodies    *intmap.Map[uint64, *bodyInfo]
	nextGroup uint
}

type bodyInfo struct {
	entity   ecs.Entity
	body     *cp.Body
	shape    *cp.Shape
	group    uint
	bodyType component.BodyType
	collider component.Collider
	mass     float64
	damping  component.Damping

	joint       *cp.Constraint
	jointParent ecs.Entity

	// Last transform written to or read from the body, used to tell gameplay
	// writes apart from simulation results.
	lastX, lastY, lastRot float64
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:  newSpace(),
		bodies: intmap.New[uint64, *bodyInfo](64),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = physicsIterations
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Body returns the simulated body of e.
func (ps *PhysicsSystem) Body(e ecs.Entity) (*cp.Body, bool) {
	if ps == nil {
		return nil, false
	}
	info, ok := ps.bodies.Get(uint64(e))
	if !ok {
		return nil, false
	}
	return info.body, true
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
	}

	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.syncJoints(w)
	ps.pushState(w)
	ps.applyImpulses(w)

	if dt := w.Time().Delta; dt > 0 {
		ps.space.Step(dt)
	}

	ps.syncTransforms(w)
}

// Reset drops every body, e.g. before a scene is rebuilt.
func (ps *PhysicsSystem) Reset() {
	ps.space = newSpace()
	ps.bodies.Clear()
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	var stale []uint64
	ps.bodies.ForEach(func(key uint64, info *bodyInfo) bool {
		if !ps.upToDate(w, info) {
			stale = append(stale, key)
		}
		return true
	})
	for _, key := range stale {
		info, _ := ps.bodies.Get(key)
		ps.removeBody(info)
		ps.bodies.Del(key)
	}
}

// upToDate reports whether the body still matches its entity's components.
func (ps *PhysicsSystem) upToDate(w *ecs.World, info *bodyInfo) bool {
	e := info.entity
	if !w.IsAlive(e) {
		return false
	}
	col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok || *col != info.collider {
		return false
	}
	if bodyTypeOf(w, e) != info.bodyType {
		return false
	}
	return massOf(w, e, col) == info.mass
}

func (ps *PhysicsSystem) removeBody(info *bodyInfo) {
	if info == nil {
		return
	}
	if info.joint != nil {
		ps.space.RemoveConstraint(info.joint)
		info.joint = nil
	}
	// Joints on other bodies that point at this one go with it.
	ps.bodies.ForEach(func(_ uint64, other *bodyInfo) bool {
		if other.joint != nil && other.jointParent == info.entity {
			ps.space.RemoveConstraint(other.joint)
			other.joint = nil
		}
		return true
	})
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
	}
	if info.body != nil {
		ps.space.RemoveBody(info.body)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		if _, ok := ps.bodies.Get(uint64(e)); ok {
			return
		}
		info := ps.createBodyInfo(w, e, *col, *t)
		if info == nil {
			return
		}
		ps.bodies.Put(uint64(e), info)
	})
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, col component.Collider, t component.Transform) *bodyInfo {
	ps.nextGroup++
	info := &bodyInfo{
		entity:   e,
		group:    ps.nextGroup,
		bodyType: bodyTypeOf(w, e),
		collider: col,
		mass:     massOf(w, e, &col),
	}
	if d, ok := ecs.Get(w, e, component.DampingComponent.Kind()); ok {
		info.damping = *d
	}

	switch info.bodyType {
	case component.BodyFixed:
		info.body = cp.NewStaticBody()
	case component.BodyKinematic:
		info.body = cp.NewKinematicBody()
	default:
		var moment float64
		switch col.Shape {
		case component.ColliderBall:
			moment = cp.MomentForCircle(info.mass, 0, col.Radius, cp.Vector{})
		default:
			moment = cp.MomentForBox(info.mass, col.HalfWidth*2, col.HalfHeight*2)
		}
		info.body = cp.NewBody(info.mass, moment)
		info.body.SetVelocityUpdateFunc(info.updateVelocity)
	}
	info.body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	info.body.SetAngle(t.Rotation)
	info.body.UserData = e
	info.lastX, info.lastY, info.lastRot = t.X, t.Y, t.Rotation

	switch col.Shape {
	case component.ColliderBall:
		if col.Radius <= 0 {
			log.Printf("physics: entity=%s ball collider needs a positive radius", e)
			return nil
		}
		info.shape = cp.NewCircle(info.body, col.Radius, cp.Vector{})
	default:
		if col.HalfWidth <= 0 || col.HalfHeight <= 0 {
			log.Printf("physics: entity=%s cuboid collider needs positive half extents", e)
			return nil
		}
		info.shape = cp.NewBox(info.body, col.HalfWidth*2, col.HalfHeight*2, 0)
	}
	info.shape.SetFriction(col.Friction)
	info.shape.SetSensor(col.Sensor)
	info.shape.UserData = e
	ps.applyMaterial(w, info)

	ps.space.AddBody(info.body)
	ps.space.AddShape(info.shape)
	return info
}

// updateVelocity integrates forces and then applies per-body damping as
// v *= 1 / (1 + dt*damping).
func (info *bodyInfo) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(body, gravity, damping, dt)
	if info.damping.Linear > 0 {
		body.SetVelocityVector(body.Velocity().Mult(DampingFactor(info.damping.Linear, dt)))
	}
	if info.damping.Angular > 0 {
		body.SetAngularVelocity(body.AngularVelocity() * DampingFactor(info.damping.Angular, dt))
	}
}

// DampingFactor is the velocity multiplier for one step of dt seconds.
func DampingFactor(damping, dt float64) float64 {
	if damping <= 0 || dt <= 0 {
		return 1
	}
	return 1 / (1 + dt*damping)
}

// applyMaterial pushes restitution and collision groups, which may change at
// any time without rebuilding the body.
func (ps *PhysicsSystem) applyMaterial(w *ecs.World, info *bodyInfo) {
	elasticity := 0.0
	if r, ok := ecs.Get(w, info.entity, component.RestitutionComponent.Kind()); ok {
		elasticity = r.Coefficient
	}
	info.shape.SetElasticity(elasticity)

	filter := cp.NewShapeFilter(info.group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
	if g, ok := ecs.Get(w, info.entity, component.CollisionGroupsComponent.Kind()); ok {
		filter.Categories = uint(g.Memberships)
		filter.Mask = uint(g.Filters)
	}
	info.shape.SetFilter(filter)

	if d, ok := ecs.Get(w, info.entity, component.DampingComponent.Kind()); ok {
		info.damping = *d
	} else {
		info.damping = component.Damping{}
	}
}

func (ps *PhysicsSystem) syncJoints(w *ecs.World) {
	ps.bodies.ForEach(func(_ uint64, info *bodyInfo) bool {
		j, ok := ecs.Get(w, info.entity, component.ImpulseJointComponent.Kind())
		if !ok {
			if info.joint != nil {
				ps.space.RemoveConstraint(info.joint)
				info.joint = nil
			}
			return true
		}
		parentEntity := ecs.Entity(j.Parent)
		if info.joint != nil && info.jointParent == parentEntity {
			return true
		}
		parent, ok := ps.bodies.Get(uint64(parentEntity))
		if !ok {
			return true
		}
		if info.joint != nil {
			ps.space.RemoveConstraint(info.joint)
		}
		info.joint = cp.NewPivotJoint2(parent.body, info.body,
			cp.Vector{X: j.AnchorParentX, Y: j.AnchorParentY},
			cp.Vector{X: j.AnchorChildX, Y: j.AnchorChildY})
		info.jointParent = parentEntity
		ps.space.AddConstraint(info.joint)
		return true
	})
}

func (ps *PhysicsSystem) pushState(w *ecs.World) {
	ps.bodies.ForEach(func(_ uint64, info *bodyInfo) bool {
		ps.applyMaterial(w, info)

		if t, ok := ecs.Get(w, info.entity, component.TransformComponent.Kind()); ok {
			if t.X != info.lastX || t.Y != info.lastY || t.Rotation != info.lastRot {
				info.body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
				info.body.SetAngle(t.Rotation)
				info.lastX, info.lastY, info.lastRot = t.X, t.Y, t.Rotation
				if info.bodyType == component.BodyFixed {
					ps.space.ReindexShapesForBody(info.body)
				}
			}
		}

		if info.bodyType == component.BodyFixed {
			return true
		}
		if v, ok := ecs.Get(w, info.entity, component.VelocityComponent.Kind()); ok {
			info.body.SetVelocity(v.X, v.Y)
			info.body.SetAngularVelocity(v.Angular)
		}
		return true
	})
}

func (ps *PhysicsSystem) applyImpulses(w *ecs.World) {
	ecs.ForEach(w, component.ExternalImpulseComponent.Kind(), func(e ecs.Entity, imp *component.ExternalImpulse) {
		if imp.IsZero() {
			return
		}
		info, ok := ps.bodies.Get(uint64(e))
		if ok && info.bodyType == component.BodyDynamic {
			ApplyImpulse(info.body, *imp)
		}
		*imp = component.ExternalImpulse{}
	})
}

// ApplyImpulse applies a linear impulse, at a world point when given, and an
// angular impulse.
func ApplyImpulse(body *cp.Body, imp component.ExternalImpulse) {
	point := body.Position()
	if imp.AtPoint {
		point = cp.Vector{X: imp.PointX, Y: imp.PointY}
	}
	if imp.X != 0 || imp.Y != 0 {
		body.ApplyImpulseAtWorldPoint(cp.Vector{X: imp.X, Y: imp.Y}, point)
	}
	if imp.Torque != 0 && body.Moment() > 0 && !math.IsInf(body.Moment(), 1) {
		body.SetAngularVelocity(body.AngularVelocity() + imp.Torque/body.Moment())
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ps.bodies.ForEach(func(_ uint64, info *bodyInfo) bool {
		if info.bodyType == component.BodyFixed {
			return true
		}
		pos := info.body.Position()
		angle := info.body.Angle()
		if t, ok := ecs.Get(w, info.entity, component.TransformComponent.Kind()); ok {
			t.X, t.Y, t.Rotation = pos.X, pos.Y, angle
		}
		info.lastX, info.lastY, info.lastRot = pos.X, pos.Y, angle

		if v, ok := ecs.Get(w, info.entity, component.VelocityComponent.Kind()); ok {
			vel := info.body.Velocity()
			v.X, v.Y, v.Angular = vel.X, vel.Y, info.body.AngularVelocity()
		}
		return true
	})
}

// CastRay returns the first entity hit by a ray from origin along the unit
// vector dir, and the distance to the hit. The body of exclude is ignored.
// With solid set, an origin inside a collider hits it at distance zero.
func (ps *PhysicsSystem) CastRay(originX, originY, dirX, dirY, maxToi float64, solid bool, exclude ecs.Entity) (ecs.Entity, float64, bool) {
	if ps == nil || ps.space == nil || maxToi <= 0 || (dirX == 0 && dirY == 0) {
		return 0, 0, false
	}
	filter := cp.SHAPE_FILTER_ALL
	if info, ok := ps.bodies.Get(uint64(exclude)); ok {
		filter.Group = info.group
	}

	origin := cp.Vector{X: originX, Y: originY}
	if solid {
		if pq := ps.space.PointQueryNearest(origin, 0, filter); pq != nil && pq.Shape != nil && pq.Distance <= 0 {
			if e, ok := pq.Shape.UserData.(ecs.Entity); ok {
				return e, 0, true
			}
		}
	}

	end := cp.Vector{X: originX + dirX*maxToi, Y: originY + dirY*maxToi}
	hit := ps.space.SegmentQueryFirst(origin, end, 0, filter)
	if hit.Shape == nil {
		return 0, 0, false
	}
	e, ok := hit.Shape.UserData.(ecs.Entity)
	if !ok {
		return 0, 0, false
	}
	return e, hit.Alpha * maxToi, true
}

func bodyTypeOf(w *ecs.World, e ecs.Entity) component.BodyType {
	if rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok {
		return rb.Type
	}
	return component.BodyFixed
}

func massOf(w *ecs.World, e ecs.Entity, col *component.Collider) float64 {
	if m, ok := ecs.Get(w, e, component.ColliderMassComponent.Kind()); ok && m.Mass > 0 {
		return m.Mass
	}
	var area float64
	switch col.Shape {
	case component.ColliderBall:
		area = math.Pi * col.Radius * col.Radius
	default:
		area = 4 * col.HalfWidth * col.HalfHeight
	}
	if area <= 0 {
		return 1
	}
	return area * DefaultDensity
}
