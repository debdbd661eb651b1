package component

import "image/color"

// LineRender is a world-space debug line.
type LineRender struct {
	StartX float64
	StartY float64
	EndX   float64
	EndY   float64
	Width  float32
	Color  color.Color
}

var LineRenderComponent = NewComponent[LineRender]()
