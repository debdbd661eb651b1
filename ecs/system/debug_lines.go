package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

var debugLineColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// SpawnDebugLine adds a world-space line that lives for duration seconds.
// A zero duration shows it for a single frame.
func SpawnDebugLine(w *ecs.World, x1, y1, x2, y2, duration float64) ecs.Entity {
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.LineRenderComponent.Kind(), &component.LineRender{
		StartX: x1,
		StartY: y1,
		EndX:   x2,
		EndY:   y2,
		Width:  1,
		Color:  debugLineColor,
	})
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: duration})
	return e
}

// DrawLines draws every LineRender through the camera view.
func DrawLines(w *ecs.World, view View, screen *ebiten.Image) {
	ecs.ForEach(w, component.LineRenderComponent.Kind(), func(_ ecs.Entity, l *component.LineRender) {
		x1, y1 := view.ToScreen(l.StartX, l.StartY)
		x2, y2 := view.ToScreen(l.EndX, l.EndY)
		c := l.Color
		if c == nil {
			c = debugLineColor
		}
		width := l.Width
		if width <= 0 {
			width = 1
		}
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), width, c, true)
	})
}
