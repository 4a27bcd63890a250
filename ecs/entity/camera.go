package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"dicetable/ecs"
	"dicetable/ecs/component"
)

// NewCamera spawns the single first-person camera looking at a target point.
func NewCamera(w *ecs.World, position, lookAt mgl64.Vec3) (ecs.Entity, error) {
	e := w.CreateEntity()

	dir := lookAt.Sub(position)
	if dir.Len() < 1e-9 {
		dir = mgl64.Vec3{0, 0, -1}
	}
	dir = dir.Normalize()

	rig := component.CameraRig{
		Yaw:             math.Atan2(-dir.X(), -dir.Z()),
		Pitch:           math.Asin(dir.Y()),
		LastForwardFlat: mgl64.Vec3{0, 0, -1},
	}
	if flat, ok := rig.ForwardFlat(); ok {
		rig.LastForwardFlat = flat
	}

	if err := ecs.Add(w, e, component.CameraRigComponent, rig); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.Transform3DComponent, component.Transform3D{Position: position}); err != nil {
		return 0, err
	}
	return e, nil
}
