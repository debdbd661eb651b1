package system

import (
	"fmt"
	"log"

	"github.com/milk9111/tanks/ecs"
)

// EventLogSystem drains the frame's events, logs them and remembers the last
// one for the HUD. It runs at the end of the schedule.
type EventLogSystem struct {
	last string
}

func NewEventLogSystem() *EventLogSystem {
	return &EventLogSystem{}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		msg := DescribeEvent(evt)
		log.Printf("events: %s", msg)
		s.last = msg
	}
}

// Last is the most recent event description, or "".
func (s *EventLogSystem) Last() string {
	if s == nil {
		return ""
	}
	return s.last
}

func DescribeEvent(evt ecs.Event) string {
	switch evt.Type {
	case ecs.EventRaycastHit:
		if hit, ok := evt.Data.(ecs.RaycastHit); ok {
			return fmt.Sprintf("hit %s at %s", hit.Target, FormatCoords(hit.X, hit.Y))
		}
	case ecs.EventWaterSourceDepleted:
		if e, ok := evt.Data.(ecs.Entity); ok {
			return fmt.Sprintf("water source %s depleted", e)
		}
	}
	return evt.Type
}
