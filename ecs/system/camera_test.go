package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/stretchr/testify/require"
)

func TestViewRoundTrip(t *testing.T) {
	v := View{X: 40, Y: -20, Zoom: 2.5, Width: 1280, Height: 720}

	sx, sy := v.ToScreen(40, -20)
	require.InDelta(t, 640, sx, 1e-9)
	require.InDelta(t, 360, sy, 1e-9)

	wx, wy := v.ToWorld(v.ToScreen(13, 7))
	require.InDelta(t, 13, wx, 1e-9)
	require.InDelta(t, 7, wy, 1e-9)
}

func TestCameraViewDefaults(t *testing.T) {
	w := ecs.NewWorld()
	v := CameraView(w)
	require.Equal(t, 1.0, v.Zoom)
	require.Zero(t, v.X)

	cam := w.CreateEntity()
	require.NoError(t, ecs.Add(w, cam, component.CameraTagComponent.Kind(), &component.CameraTag{}))
	require.NoError(t, ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{X: 5, Y: 6}))
	require.NoError(t, ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: 10}))

	v = CameraView(w)
	require.Equal(t, View{X: 5, Y: 6, Zoom: 10, Width: 1280, Height: 720}, v)
}

func TestZoomCamera(t *testing.T) {
	cases := []struct {
		name     string
		zoom     float64
		wheel    float64
		minScale float64
		maxScale float64
		want     float64
	}{
		{"zoom in", 1, 1, 0, 0, 1.1},
		{"zoom out", 1.1, -1, 0, 0, 1},
		{"clamped to min scale", 1, 5, 0.8, 0, 1.25},
		{"clamped to max scale", 1, -5, 0, 1.2, 1 / 1.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cam := &component.Camera{Zoom: tc.zoom}
			pc := &component.PanCam{MinScale: tc.minScale, MaxScale: tc.maxScale}
			ZoomCamera(cam, pc, &component.Transform{}, &component.Input{}, tc.wheel)
			require.InDelta(t, tc.want, cam.Zoom, 1e-9)
		})
	}
}

func TestZoomToCursorKeepsPointUnderCursor(t *testing.T) {
	cam := &component.Camera{Zoom: 1}
	pc := &component.PanCam{ZoomToCursor: true}
	tr := &component.Transform{X: 10, Y: 10}
	in := &component.Input{HasCursor: true, CursorX: 900, CursorY: 100}

	before := View{X: tr.X, Y: tr.Y, Zoom: cam.Zoom, Width: 1280, Height: 720}
	bx, by := before.ToWorld(in.CursorX, in.CursorY)

	ZoomCamera(cam, pc, tr, in, 3)

	after := View{X: tr.X, Y: tr.Y, Zoom: cam.Zoom, Width: 1280, Height: 720}
	ax, ay := after.ToWorld(in.CursorX, in.CursorY)
	require.InDelta(t, bx, ax, 1e-9)
	require.InDelta(t, by, ay, 1e-9)
}

func TestPanCamDrag(t *testing.T) {
	w := ecs.NewWorld()
	inEntity := w.CreateEntity()
	in := &component.Input{HasCursor: true, CursorX: 100, CursorY: 100}
	in.Held[ebiten.MouseButtonLeft] = true
	require.NoError(t, ecs.Add(w, inEntity, component.InputComponent.Kind(), in))

	cam := w.CreateEntity()
	tr := &component.Transform{}
	require.NoError(t, ecs.Add(w, cam, component.TransformComponent.Kind(), tr))
	require.NoError(t, ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: 2}))
	require.NoError(t, ecs.Add(w, cam, component.PanCamComponent.Kind(), &component.PanCam{
		Enabled:     true,
		GrabButtons: []ebiten.MouseButton{ebiten.MouseButtonLeft},
	}))

	s := NewPanCamSystem()
	s.Update(w)
	require.Zero(t, tr.X, "first grab only records the cursor")

	in.CursorX, in.CursorY = 120, 90
	s.Update(w)
	require.InDelta(t, -10, tr.X, 1e-9)
	require.InDelta(t, 5, tr.Y, 1e-9)

	in.Held[ebiten.MouseButtonLeft] = false
	in.CursorX = 500
	s.Update(w)
	require.InDelta(t, -10, tr.X, 1e-9)
}
