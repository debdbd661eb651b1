package system

import (
	"testing"

	"github.com/milk9111/tanks/ai"
	"github.com/milk9111/tanks/ecs"
	"github.com/stretchr/testify/require"
)

func TestDescribeEvent(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()

	cases := []struct {
		name string
		evt  ecs.Event
		want string
	}{
		{"raycast hit", ecs.Event{Type: ecs.EventRaycastHit, Data: ecs.RaycastHit{Target: e, X: 1.5, Y: -2}}, "hit " + e.String() + " at " + FormatCoords(1.5, -2)},
		{"depleted", ecs.Event{Type: ecs.EventWaterSourceDepleted, Data: e}, "water source " + e.String() + " depleted"},
		{"unknown payload", ecs.Event{Type: ecs.EventRaycastHit, Data: 3}, ecs.EventRaycastHit},
		{"other", ecs.Event{Type: "custom"}, "custom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DescribeEvent(tc.evt))
		})
	}
}

func TestEventLogSystemDrainsBeforeFlush(t *testing.T) {
	w, actor, source := newThirstWorld(t, 10, 0, 50)
	drink := &Drink{PerSecond: 10}
	w.Advance(0.5)
	require.Equal(t, ai.Failure, drink.Tick(&AIContext{World: w, Actor: actor, Dt: 0.5}, ai.Executing))
	require.False(t, w.IsAlive(source))

	events := NewEventLogSystem()
	ecs.NewScheduler(events).Update(w)

	require.Equal(t, "water source "+source.String()+" depleted", events.Last())
	require.Empty(t, w.Events().Drain())

	// A quiet frame keeps the last description.
	ecs.NewScheduler(events).Update(w)
	require.Equal(t, "water source "+source.String()+" depleted", events.Last())
}
