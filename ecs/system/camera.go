package system

import (
	"math"

	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

const zoomStep = 1.1

// View maps between world and screen space. X and Y are the world point
// shown at the centre of the screen.
type View struct {
	X      float64
	Y      float64
	Zoom   float64
	Width  float64
	Height float64
}

// CameraView returns the view of the first tagged camera, or an identity
// view centred on the origin.
func CameraView(w *ecs.World) View {
	v := View{Zoom: 1, Width: common.BaseWidth, Height: common.BaseHeight}
	camEntity, ok := w.First(component.CameraTagComponent.Kind())
	if !ok {
		return v
	}
	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		v.X = t.X
		v.Y = t.Y
	}
	if c, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		v.Zoom = c.Zoom
	}
	return v
}

func (v View) ToScreen(x, y float64) (float64, float64) {
	return (x-v.X)*v.Zoom + v.Width/2, (y-v.Y)*v.Zoom + v.Height/2
}

func (v View) ToWorld(sx, sy float64) (float64, float64) {
	return (sx-v.Width/2)/v.Zoom + v.X, (sy-v.Height/2)/v.Zoom + v.Y
}

// CursorWorld returns the cursor position in world space.
func CursorWorld(w *ecs.World) (float64, float64, bool) {
	in := CurrentInput(w)
	if !in.HasCursor {
		return 0, 0, false
	}
	x, y := CameraView(w).ToWorld(in.CursorX, in.CursorY)
	return x, y, true
}

// PanCamSystem drags cameras with the grab buttons and zooms them with the
// mouse wheel.
type PanCamSystem struct{}

func NewPanCamSystem() *PanCamSystem {
	return &PanCamSystem{}
}

func (s *PanCamSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	in := CurrentInput(w)

	ecs.ForEach3(w, component.CameraComponent.Kind(), component.PanCamComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, cam *component.Camera, pc *component.PanCam, t *component.Transform) {
		if cam.Zoom <= 0 {
			cam.Zoom = 1
		}
		if !pc.Enabled {
			pc.Dragging = false
			return
		}

		if grabbing(in, pc) && in.HasCursor {
			if pc.Dragging {
				t.X -= (in.CursorX - pc.LastX) / cam.Zoom
				t.Y -= (in.CursorY - pc.LastY) / cam.Zoom
			}
			pc.Dragging = true
			pc.LastX, pc.LastY = in.CursorX, in.CursorY
		} else {
			pc.Dragging = false
		}

		if in.WheelY != 0 {
			ZoomCamera(cam, pc, t, in, in.WheelY)
		}
	})
}

// ZoomCamera applies wheel steps to the camera scale. With ZoomToCursor the
// world point under the cursor stays put.
func ZoomCamera(cam *component.Camera, pc *component.PanCam, t *component.Transform, in *component.Input, wheel float64) {
	before := View{X: t.X, Y: t.Y, Zoom: cam.Zoom, Width: common.BaseWidth, Height: common.BaseHeight}

	scale := 1 / cam.Zoom * math.Pow(zoomStep, -wheel)
	if pc.MinScale > 0 {
		scale = math.Max(scale, pc.MinScale)
	}
	if pc.MaxScale > 0 {
		scale = math.Min(scale, pc.MaxScale)
	}
	cam.Zoom = 1 / scale

	if !pc.ZoomToCursor || !in.HasCursor {
		return
	}
	after := before
	after.Zoom = cam.Zoom
	bx, by := before.ToWorld(in.CursorX, in.CursorY)
	ax, ay := after.ToWorld(in.CursorX, in.CursorY)
	t.X += bx - ax
	t.Y += by - ay
}

func grabbing(in *component.Input, pc *component.PanCam) bool {
	for _, b := range pc.GrabButtons {
		if int(b) >= 0 && int(b) < len(in.Held) && in.Held[b] {
			return true
		}
	}
	return false
}
