package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"dicetable/ecs"
	"dicetable/ecs/component"
)

// InputSystem samples ebiten input once per frame and writes it onto the
// control entity's Input component. Mouse deltas are derived from cursor
// position, which keeps accumulating while the cursor is captured.
type InputSystem struct {
	prevX, prevY int
	primed       bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	const stickDeadzone = 0.2
	// Right-stick look speed in cursor-pixels per frame at full deflection.
	const stickLookScale = 12.0

	cx, cy := ebiten.CursorPosition()
	dx, dy := 0.0, 0.0
	if i.primed {
		dx = float64(cx - i.prevX)
		dy = float64(cy - i.prevY)
	}
	i.prevX, i.prevY = cx, cy
	i.primed = true

	rotate := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	chargeHeld := ebiten.IsKeyPressed(ebiten.KeySpace)
	chargePressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	chargeReleased := inpututil.IsKeyJustReleased(ebiten.KeySpace)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			rotate = true
			dx += rx * stickLookScale
			dy += ry * stickLookScale
		}

		chargeHeld = chargeHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		chargePressed = chargePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		chargeReleased = chargeReleased || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonRightBottom)
	}

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, input *component.Input) {
		input.RotateHeld = rotate
		input.MouseDX = dx
		input.MouseDY = dy
		input.ChargeHeld = chargeHeld
		input.ChargePressed = chargePressed
		input.ChargeReleased = chargeReleased
	})
}
