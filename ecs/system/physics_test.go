package system

import (
	"math"
	"testing"

	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/stretchr/testify/require"
)

func addBall(t *testing.T, w *ecs.World, x, y, radius float64, bodyType component.BodyType) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	require.NoError(t, ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Type: bodyType}))
	require.NoError(t, ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Shape: component.ColliderBall, Radius: radius}))
	return e
}

func TestDampingFactor(t *testing.T) {
	require.Equal(t, 1.0, DampingFactor(0, 1.0/60))
	require.Equal(t, 1.0, DampingFactor(50, 0))
	require.InDelta(t, 1/(1+50.0/60), DampingFactor(50, 1.0/60), 1e-12)
}

func TestPhysicsCreatesAndRemovesBodies(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	ball := addBall(t, w, 0, -400, 50, component.BodyDynamic)
	ground := w.CreateEntity()
	require.NoError(t, ecs.Add(w, ground, component.TransformComponent.Kind(), &component.Transform{Y: 100}))
	require.NoError(t, ecs.Add(w, ground, component.ColliderComponent.Kind(), &component.Collider{HalfWidth: 250, HalfHeight: 25}))

	w.Advance(1.0 / 60)
	ps.Update(w)

	body, ok := ps.Body(ball)
	require.True(t, ok)
	require.InDelta(t, math.Pi*50*50*DefaultDensity, body.Mass(), 1e-9)
	_, ok = ps.Body(ground)
	require.True(t, ok, "a collider without a rigid body is fixed")

	w.DestroyEntity(ball)
	ps.Update(w)
	_, ok = ps.Body(ball)
	require.False(t, ok)
}

func TestPhysicsAppliesImpulse(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	ball := addBall(t, w, 0, 0, 10, component.BodyDynamic)
	require.NoError(t, ecs.Add(w, ball, component.ColliderMassComponent.Kind(), &component.ColliderMass{Mass: 2}))
	require.NoError(t, ecs.Add(w, ball, component.VelocityComponent.Kind(), &component.Velocity{}))
	imp := &component.ExternalImpulse{X: 100}
	require.NoError(t, ecs.Add(w, ball, component.ExternalImpulseComponent.Kind(), imp))

	w.Advance(1.0 / 60)
	ps.Update(w)

	v, _ := ecs.Get(w, ball, component.VelocityComponent.Kind())
	require.InDelta(t, 50, v.X, 1e-6)
	require.True(t, imp.IsZero(), "impulses are consumed")

	tr, _ := ecs.Get(w, ball, component.TransformComponent.Kind())
	require.Greater(t, tr.X, 0.0)
}

func TestCastRay(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	shooter := addBall(t, w, 0, 0, 10, component.BodyDynamic)
	target := addBall(t, w, 100, 0, 10, component.BodyDynamic)

	w.Advance(1.0 / 60)
	ps.Update(w)

	cases := []struct {
		name       string
		dirX, dirY float64
		maxToi     float64
		exclude    ecs.Entity
		wantHit    bool
		wantEntity ecs.Entity
		wantToi    float64
	}{
		{"shooter excluded", 1, 0, 200, shooter, true, target, 90},
		{"solid origin", 1, 0, 200, 0, true, shooter, 0},
		{"too short", 1, 0, 50, shooter, false, 0, 0},
		{"wrong way", -1, 0, 200, shooter, false, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, toi, hit := ps.CastRay(0, 0, tc.dirX, tc.dirY, tc.maxToi, true, tc.exclude)
			require.Equal(t, tc.wantHit, hit)
			if !tc.wantHit {
				return
			}
			require.Equal(t, tc.wantEntity, e)
			require.InDelta(t, tc.wantToi, toi, 0.5)
		})
	}
}
