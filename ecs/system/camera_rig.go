package system

import (
	"dicetable/common"
	"dicetable/config"
	"dicetable/ecs"
	"dicetable/ecs/component"
)

// CameraRigSystem turns mouse drag into camera yaw/pitch. The camera only
// moves, and the cursor is only captured, while the rotate button is held and
// the mouse actually moved this frame.
type CameraRigSystem struct {
	camEntity ecs.Entity
	cursor    CursorLocker
	tuning    *config.Store
}

func NewCameraRigSystem(tuning *config.Store, cursor CursorLocker) *CameraRigSystem {
	return &CameraRigSystem{cursor: cursor, tuning: tuning}
}

func (cs *CameraRigSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	inputEnt, ok := ecs.First(w, component.InputComponent)
	if !ok {
		return
	}
	input, ok := ecs.Get(w, inputEnt, component.InputComponent)
	if !ok {
		return
	}

	if !input.RotateHeld {
		return
	}
	if input.MouseDX == 0 && input.MouseDY == 0 {
		return
	}

	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraRigComponent)
		if !ok {
			// No camera yet; nothing to rotate.
			return
		}
		cs.camEntity = camEntity
	}

	rig, ok := ecs.Get(w, cs.camEntity, component.CameraRigComponent)
	if !ok {
		return
	}

	sens := cs.tuning.Current().MouseSensitivity
	rig.Yaw -= input.MouseDX * sens
	rig.Pitch = common.Clamp(rig.Pitch-input.MouseDY*sens, -component.PitchLimit, component.PitchLimit)

	if flat, ok := rig.ForwardFlat(); ok {
		rig.LastForwardFlat = flat
	}

	if cs.cursor != nil {
		cs.cursor.LockAndHide()
	}
}
