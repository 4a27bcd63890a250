package component

import "github.com/go-gl/mathgl/mgl64"

// Die tags a dice entity. Index distinguishes the pair (1 or 2).
type Die struct {
	Index      int
	HalfExtent float64
}

var DieComponent = NewComponent[Die]()

// DieMotion carries the vertical-axis state that the planar physics space
// doesn't model: height above the table, vertical velocity, and render spin.
type DieMotion struct {
	Height      float64
	VerticalVel float64
	Spin        mgl64.Vec3
}

var DieMotionComponent = NewComponent[DieMotion]()
