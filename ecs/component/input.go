package component

import "github.com/hajimehoshi/ebiten/v2"

// Input is the per-frame input snapshot. Cursor coordinates are in screen
// space.
type Input struct {
	MoveX float64
	MoveY float64

	CursorX   float64
	CursorY   float64
	HasCursor bool

	Held    [ebiten.MouseButtonMax + 1]bool
	Pressed [ebiten.MouseButtonMax + 1]bool
	WheelY  float64

	CopyPressed bool
}

var InputComponent = NewComponent[Input]()

// AnyPressed reports the buttons pressed this frame, in button order.
func (i *Input) AnyPressed() []ebiten.MouseButton {
	var out []ebiten.MouseButton
	for b, p := range i.Pressed {
		if p {
			out = append(out, ebiten.MouseButton(b))
		}
	}
	return out
}
