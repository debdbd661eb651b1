package system

import (
	"testing"

	"github.com/milk9111/tanks/ai"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/stretchr/testify/require"
)

func TestGrowThirst(t *testing.T) {
	cases := []struct {
		name  string
		start component.Thirst
		dt    float64
		want  float64
	}{
		{"grows", component.Thirst{Thirst: 10, PerSecond: 2}, 0.5, 11},
		{"caps at max", component.Thirst{Thirst: 99, PerSecond: 10}, 1, component.MaxThirst},
		{"floors at zero", component.Thirst{Thirst: 1, PerSecond: -5}, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			th := tc.start
			GrowThirst(&th, tc.dt)
			require.InDelta(t, tc.want, th.Thirst, 1e-9)
		})
	}
}

func TestDrinkWater(t *testing.T) {
	thirst := component.Thirst{Thirst: 3}
	source := component.WaterSource{Capacity: 5}
	shape := component.Shape{Kind: component.ShapeCircle, Radius: 5}

	require.False(t, DrinkWater(2, &thirst, &source, &shape))
	require.Equal(t, 1.0, thirst.Thirst)
	require.Equal(t, 3.0, source.Capacity)
	require.Equal(t, 3.0, shape.Radius)

	require.True(t, DrinkWater(3, &thirst, &source, nil))
	require.Equal(t, 0.0, thirst.Thirst)
	require.Equal(t, 0.0, source.Capacity)
}

func newThirstWorld(t *testing.T, actorX, actorY float64, thirst float64) (*ecs.World, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	actor := w.CreateEntity()
	require.NoError(t, ecs.Add(w, actor, component.TransformComponent.Kind(), &component.Transform{X: actorX, Y: actorY}))
	require.NoError(t, ecs.Add(w, actor, component.ThirstComponent.Kind(), &component.Thirst{Thirst: thirst, PerSecond: 2}))

	source := w.CreateEntity()
	require.NoError(t, ecs.Add(w, source, component.TransformComponent.Kind(), &component.Transform{X: 10, Y: 0}))
	require.NoError(t, ecs.Add(w, source, component.WaterSourceComponent.Kind(), &component.WaterSource{Capacity: 5}))
	require.NoError(t, ecs.Add(w, source, component.ShapeComponent.Kind(), &component.Shape{Kind: component.ShapeCircle, Radius: 5}))
	return w, actor, source
}

func TestMoveToWaterSource(t *testing.T) {
	w, actor, _ := newThirstWorld(t, 0, 0, 50)
	move := &MoveToWaterSource{Speed: 4}
	ctx := &AIContext{World: w, Actor: actor, Dt: 1}

	state := move.Tick(ctx, ai.Requested)
	require.Equal(t, ai.Executing, state)

	state = move.Tick(ctx, state)
	require.Equal(t, ai.Executing, state)
	pos, _ := ecs.Get(w, actor, component.TransformComponent.Kind())
	require.InDelta(t, 4, pos.X, 1e-9)

	state = move.Tick(ctx, state)
	state = move.Tick(ctx, state)
	require.InDelta(t, 10, pos.X, 1e-9, "last step must not overshoot")
	require.Equal(t, ai.Executing, state)

	require.Equal(t, ai.Success, move.Tick(ctx, state))
	require.Equal(t, ai.Failure, move.Tick(ctx, ai.Cancelled))
}

func TestMoveToWaterSourceFailsWithoutSource(t *testing.T) {
	w, actor, source := newThirstWorld(t, 0, 0, 50)
	w.DestroyEntity(source)

	move := &MoveToWaterSource{Speed: 1}
	require.Equal(t, ai.Failure, move.Tick(&AIContext{World: w, Actor: actor, Dt: 1}, ai.Executing))
}

func TestDrink(t *testing.T) {
	cases := []struct {
		name      string
		actorX    float64
		thirst    float64
		perSecond float64
		want      ai.ActionState
		depleted  bool
	}{
		{"too far away", 5, 50, 10, ai.Failure, false},
		{"quenched", 10, 2, 3, ai.Success, false},
		{"still thirsty", 10, 50, 1, ai.Failure, false},
		{"drains the source", 10, 50, 10, ai.Failure, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, actor, source := newThirstWorld(t, tc.actorX, 0, tc.thirst)
			drink := &Drink{PerSecond: tc.perSecond}
			ctx := &AIContext{World: w, Actor: actor, Dt: 1}

			require.Equal(t, ai.Executing, drink.Tick(ctx, ai.Requested))
			require.Equal(t, tc.want, drink.Tick(ctx, ai.Executing))
			require.Equal(t, !tc.depleted, w.IsAlive(source))

			events := w.Events().Drain()
			if tc.depleted {
				require.Len(t, events, 1)
				require.Equal(t, ecs.EventWaterSourceDepleted, events[0].Type)
			} else {
				require.Empty(t, events)
			}
		})
	}
}

func TestThirstSystem(t *testing.T) {
	w, actor, _ := newThirstWorld(t, 0, 0, 10)
	w.Advance(2)
	NewThirstSystem().Update(w)

	th, ok := ecs.Get(w, actor, component.ThirstComponent.Kind())
	require.True(t, ok)
	require.InDelta(t, 14, th.Thirst, 1e-9)
	require.InDelta(t, 0.14, ThirstyScore(*th), 1e-9)
}
