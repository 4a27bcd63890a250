package component

// ThrowCharge accumulates throw strength while the charge key is held.
// Current never leaves [0, Max].
type ThrowCharge struct {
	Current  float64
	Max      float64
	Charging bool
}

// Ratio is the normalized fill level shown on the power meter. Max is always
// positive for a built charge, so this never divides by zero.
func (t ThrowCharge) Ratio() float64 {
	if t.Max <= 0 {
		return 0
	}
	return t.Current / t.Max
}

var ThrowChargeComponent = NewComponent[ThrowCharge]()
