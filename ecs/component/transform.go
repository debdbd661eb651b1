package component

// Transform is an entity's local transform. For entities with a Parent it is
// relative to the parent's GlobalTransform. Z orders rendering, higher on top.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()

// GlobalTransform is written by the hierarchy system every frame.
type GlobalTransform struct {
	X        float64
	Y        float64
	Z        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var GlobalTransformComponent = NewComponent[GlobalTransform]()

// Parent links a child to its parent entity. Entity holds the packed
// ecs.Entity value.
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()

type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
