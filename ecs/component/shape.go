package component

import "image/color"

type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapePolygon
	ShapeMesh
)

type Point struct {
	X float64
	Y float64
}

// Shape is a vector shape drawn in the entity's local space. Mesh shapes are
// triangle lists over Points indexed by Indices and are only filled.
type Shape struct {
	Kind        ShapeKind
	Radius      float64
	Points      []Point
	Closed      bool
	Indices     []uint16
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
}

var ShapeComponent = NewComponent[Shape]()
