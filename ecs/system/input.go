package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	moveX, moveY := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		moveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		moveY += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			moveX, moveY = lx, ly
		}
	}

	cx, cy := ebiten.CursorPosition()
	hasCursor := cx >= 0 && cy >= 0 && cx < common.BaseWidth && cy < common.BaseHeight
	_, wheelY := ebiten.Wheel()

	var held, pressed [ebiten.MouseButtonMax + 1]bool
	for b := ebiten.MouseButton0; b <= ebiten.MouseButtonMax; b++ {
		held[b] = ebiten.IsMouseButtonPressed(b)
		pressed[b] = inpututil.IsMouseButtonJustPressed(b)
	}
	copyPressed := inpututil.IsKeyJustPressed(ebiten.KeyC)

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveY = moveY
		input.CursorX = float64(cx)
		input.CursorY = float64(cy)
		input.HasCursor = hasCursor
		input.Held = held
		input.Pressed = pressed
		input.WheelY = wheelY
		input.CopyPressed = copyPressed
	})
}

// CurrentInput returns the input snapshot, or a zero Input when the world has
// no input entity.
func CurrentInput(w *ecs.World) *component.Input {
	if e, ok := w.First(component.InputComponent.Kind()); ok {
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			return in
		}
	}
	return &component.Input{}
}
