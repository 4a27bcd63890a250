package component

import "github.com/go-gl/mathgl/mgl64"

// Transform3D places an entity in table space. Yaw is the heading coming out
// of the planar physics body; Tumble is render-only rotation for dice.
type Transform3D struct {
	Position mgl64.Vec3
	Yaw      float64
	Tumble   mgl64.Vec3
}

var Transform3DComponent = NewComponent[Transform3D]()
