package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraRig is the first-person look state. Pitch stays inside
// [-PitchLimit, PitchLimit] so the view never flips over the vertical.
// LastForwardFlat caches the most recent non-degenerate flattened forward
// direction; it is the throw direction of record when the camera looks
// straight up or down.
type CameraRig struct {
	Yaw   float64
	Pitch float64

	LastForwardFlat mgl64.Vec3
}

// PitchLimit is just shy of +-90 degrees.
const PitchLimit = 1.54

// Forward returns the unit view direction for the current yaw/pitch.
// Yaw 0, pitch 0 looks down -Z.
func (c CameraRig) Forward() mgl64.Vec3 {
	cosPitch := math.Cos(c.Pitch)
	return mgl64.Vec3{
		-cosPitch * math.Sin(c.Yaw),
		math.Sin(c.Pitch),
		-cosPitch * math.Cos(c.Yaw),
	}
}

// ForwardFlat projects the view direction onto the horizontal plane and
// renormalizes. ok is false in the degenerate straight-up/straight-down case,
// where the returned vector is the cached fallback.
func (c CameraRig) ForwardFlat() (mgl64.Vec3, bool) {
	f := c.Forward()
	flat := mgl64.Vec3{f.X(), 0, f.Z()}
	if flat.Len() < 1e-6 {
		return c.LastForwardFlat, false
	}
	return flat.Normalize(), true
}

var CameraRigComponent = NewComponent[CameraRig]()
