package component

import "github.com/hajimehoshi/ebiten/v2"

type Camera struct {
	Zoom float64
}

var CameraComponent = NewComponent[Camera]()

// PanCam lets the mouse drag and wheel-zoom a camera.
type PanCam struct {
	GrabButtons  []ebiten.MouseButton
	Enabled      bool
	ZoomToCursor bool
	MinScale     float64
	MaxScale     float64

	Dragging bool
	LastX    float64
	LastY    float64
}

var PanCamComponent = NewComponent[PanCam]()
