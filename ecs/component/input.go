package component

// Input stores per-frame input state for the control entity.
type Input struct {
	RotateHeld bool
	MouseDX    float64
	MouseDY    float64

	ChargeHeld     bool
	ChargePressed  bool
	ChargeReleased bool
}

var InputComponent = NewComponent[Input]()
