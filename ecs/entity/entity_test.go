package entity

import (
	"math/rand"
	"testing"

	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/prefabs"
	"github.com/stretchr/testify/require"
)

func entityNamed(t *testing.T, w *ecs.World, name string) ecs.Entity {
	t.Helper()
	var found []ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if n.Value == name {
			found = append(found, e)
		}
	})
	require.Len(t, found, 1, name)
	return found[0]
}

func TestBuildTankBody(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "tank_body.yaml")
	require.NoError(t, err)

	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	require.True(t, ok)
	require.Equal(t, component.Player{Speed: 250, PullDistance: 10, Mode: component.MoveVelocity}, *p)

	col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	require.True(t, ok)
	require.Equal(t, component.ColliderCuboid, col.Shape)
	require.Equal(t, 20.0, col.HalfWidth)
	require.Equal(t, 15.0, col.HalfHeight)

	shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind())
	require.True(t, ok)
	require.Equal(t, component.ShapePolygon, shape.Kind)
	require.True(t, shape.Closed)
	require.Len(t, shape.Points, 4)
	require.NotNil(t, shape.Fill)
	require.Equal(t, 2.0, shape.StrokeWidth)

	rb, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	require.Equal(t, component.BodyDynamic, rb.Type)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	require.Equal(t, 1.0, tr.ScaleX)
}

func TestBuildGameScene(t *testing.T) {
	w := ecs.NewWorld()
	scene, err := BuildScene(w, "game", rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Equal(t, "game", scene.Name)
	require.NotNil(t, scene.Background)

	tank := scene.Refs["tank"]
	gun := scene.Refs["gun"]
	require.True(t, w.IsAlive(tank))

	parent, ok := ecs.Get(w, gun, component.ParentComponent.Kind())
	require.True(t, ok)
	require.Equal(t, uint64(tank), parent.Entity)
	require.True(t, ecs.Has(w, gun, component.LookAtComponent.Kind()))

	turret := entityNamed(t, w, "tank_turret")
	tp, ok := ecs.Get(w, turret, component.ParentComponent.Kind())
	require.True(t, ok)
	require.Equal(t, uint64(gun), tp.Entity)

	enemies := w.Query(component.EnemyTagComponent.Kind())
	require.Len(t, enemies, 30)
	for _, e := range enemies {
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		require.True(t, ok)
		require.GreaterOrEqual(t, tr.X, -640.0)
		require.Less(t, tr.X, 640.0)
		require.GreaterOrEqual(t, tr.Y, -360.0)
		require.Less(t, tr.Y, 360.0)
		require.GreaterOrEqual(t, tr.Z, 0.0)
		require.Less(t, tr.Z, 1.0)
	}

	_, ok = w.First(component.CameraTagComponent.Kind())
	require.True(t, ok)
	_, ok = w.First(component.InputComponent.Kind())
	require.True(t, ok)

	triangle := entityNamed(t, w, "triangle")
	mesh, _ := ecs.Get(w, triangle, component.ShapeComponent.Kind())
	require.Equal(t, component.ShapeMesh, mesh.Kind)
	require.Equal(t, []uint16{0, 1, 2}, mesh.Indices)
}

func TestBuildThirstScene(t *testing.T) {
	w := ecs.NewWorld()
	_, err := BuildScene(w, "thirst", nil)
	require.NoError(t, err)

	var positions [][2]float64
	ecs.ForEach2(w, component.WaterSourceComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, ws *component.WaterSource, tr *component.Transform) {
		require.Equal(t, 5.0, ws.Capacity)
		positions = append(positions, [2]float64{tr.X, tr.Y})
	})
	require.ElementsMatch(t, [][2]float64{{10, -10}, {-10, 0}, {-20, 0}, {0, -20}}, positions)

	actor := entityNamed(t, w, "thirsty_actor")
	cfg, ok := ecs.Get(w, actor, component.ThinkerConfigComponent.Kind())
	require.True(t, ok)
	require.Equal(t, 0.8, cfg.Threshold)
	require.Equal(t, "steps", cfg.Choices[0].Action.Kind)
	require.Len(t, cfg.Choices[0].Action.Steps, 2)

	th, ok := ecs.Get(w, actor, component.ThirstComponent.Kind())
	require.True(t, ok)
	require.Equal(t, component.Thirst{Thirst: 75, PerSecond: 2}, *th)
}

func TestBuildControllerSceneJoinsBall(t *testing.T) {
	w := ecs.NewWorld()
	scene, err := BuildScene(w, "controller", nil)
	require.NoError(t, err)

	ball := entityNamed(t, w, "pull_ball")
	joint, ok := ecs.Get(w, ball, component.ImpulseJointComponent.Kind())
	require.True(t, ok)
	require.Equal(t, uint64(scene.Refs["body"]), joint.Parent)
	require.Equal(t, 10.0, joint.AnchorParentX)

	groups, ok := ecs.Get(w, ball, component.CollisionGroupsComponent.Kind())
	require.True(t, ok)
	require.Zero(t, groups.Memberships)
	require.Zero(t, groups.Filters)

	entityNamed(t, w, "ground")
	entityNamed(t, w, "bouncing_ball")
}

func TestBuildPhysicsScene(t *testing.T) {
	w := ecs.NewWorld()
	_, err := BuildScene(w, "physics", nil)
	require.NoError(t, err)

	ground := entityNamed(t, w, "ground")
	col, ok := ecs.Get(w, ground, component.ColliderComponent.Kind())
	require.True(t, ok)
	require.Equal(t, 500.0, col.HalfWidth)
	require.Equal(t, 50.0, col.HalfHeight)
	rb, ok := ecs.Get(w, ground, component.RigidBodyComponent.Kind())
	require.True(t, ok)
	require.Equal(t, component.BodyFixed, rb.Type)

	ball := entityNamed(t, w, "bouncing_ball")
	col, ok = ecs.Get(w, ball, component.ColliderComponent.Kind())
	require.True(t, ok)
	require.Equal(t, 50.0, col.Radius)
	require.False(t, ecs.Has(w, ball, component.VelocityComponent.Kind()), "the ball starts at rest")
	pos, _ := ecs.Get(w, ball, component.TransformComponent.Kind())
	require.Equal(t, -400.0, pos.Y)
}

func TestBuildFromSpecErrors(t *testing.T) {
	cases := []struct {
		name string
		spec prefabs.EntityBuildSpec
	}{
		{"no components", prefabs.EntityBuildSpec{Name: "empty"}},
		{"unknown component", prefabs.EntityBuildSpec{Components: map[string]any{"sprite": map[string]any{}}}},
		{"bad color", prefabs.EntityBuildSpec{Components: map[string]any{
			"shape": map[string]any{"kind": "circle", "radius": 1, "fill": "red"},
		}}},
		{"bad mesh", prefabs.EntityBuildSpec{Components: map[string]any{
			"shape": map[string]any{"kind": "mesh", "points": []any{map[string]any{"x": 0, "y": 0}}, "indices": []any{0, 1, 2}},
		}}},
		{"joint outside a scene", prefabs.EntityBuildSpec{Components: map[string]any{
			"impulse_joint": map[string]any{"parent": "body"},
		}}},
		{"thirst out of range", prefabs.EntityBuildSpec{Components: map[string]any{
			"thirst": map[string]any{"thirst": 150},
		}}},
		{"unknown body type", prefabs.EntityBuildSpec{Components: map[string]any{
			"rigid_body": map[string]any{"type": "floppy"},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := buildFromSpec(w, "test.yaml", tc.spec, &buildContext{PrefabPath: "test.yaml"})
			require.Error(t, err)
			require.Empty(t, ecs.Entities(w), "failed builds leave nothing behind")
		})
	}
}

func TestSpawnEnemiesIsDeterministic(t *testing.T) {
	positions := func() [][2]float64 {
		w := ecs.NewWorld()
		es, err := SpawnEnemies(w, "enemy.yaml", 5, 100, 50, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		var out [][2]float64
		for _, e := range es {
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			out = append(out, [2]float64{tr.X, tr.Y})
		}
		return out
	}
	first := positions()
	require.Len(t, first, 5)
	require.Equal(t, first, positions())

	none, err := SpawnEnemies(ecs.NewWorld(), "enemy.yaml", 0, 100, 50, nil)
	require.NoError(t, err)
	require.Empty(t, none)
}
