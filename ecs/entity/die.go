package entity

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"dicetable/config"
	"dicetable/ecs"
	"dicetable/ecs/component"
)

var ErrNoPhysicsWorld = errors.New("entity: no physics world attached")

// NewDie spawns one die at pos and kicks it. The planar components of the
// impulse and the vertical torque go into the Chipmunk body; the vertical
// impulse component and the horizontal-axis torques feed the die's own
// height/tumble state.
func NewDie(w *ecs.World, index int, pos, impulse, torque mgl64.Vec3, t config.Tuning) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, ErrNoPhysicsWorld
	}

	e := w.CreateEntity()

	die := component.Die{Index: index, HalfExtent: t.Die.HalfExtent}
	if err := ecs.Add(w, e, component.DieComponent, die); err != nil {
		return 0, err
	}

	body := pw.SpawnDie(e, pos, impulse, torque.Y())
	if body == nil {
		w.DestroyEntity(e)
		return 0, ErrNoPhysicsWorld
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, *body); err != nil {
		return 0, err
	}

	mass := t.Die.Mass
	if mass <= 0 {
		mass = 1
	}
	size := t.Die.HalfExtent * 2
	moment := cp.MomentForBox(mass, size, size)
	spin := mgl64.Vec3{}
	if moment > 0 {
		spin = mgl64.Vec3{torque.X() / moment, 0, torque.Z() / moment}
	}

	motion := component.DieMotion{
		Height:      pos.Y(),
		VerticalVel: impulse.Y() / mass,
		Spin:        spin,
	}
	if err := ecs.Add(w, e, component.DieMotionComponent, motion); err != nil {
		return 0, err
	}

	if err := ecs.Add(w, e, component.Transform3DComponent, component.Transform3D{Position: pos}); err != nil {
		return 0, err
	}
	return e, nil
}
