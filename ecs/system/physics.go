package system

import (
	"math"

	"dicetable/config"
	"dicetable/ecs"
	"dicetable/ecs/component"
)

// Below this vertical speed a bounce is treated as settled.
const restSpeed = 0.4

// PhysicsSystem steps the planar space and integrates the vertical axis for
// each die: gravity, bounce against the felt, and tumble decay.
type PhysicsSystem struct {
	tuning *config.Store
	clock  Clock
}

func NewPhysicsSystem(tuning *config.Store, clock Clock) *PhysicsSystem {
	if clock == nil {
		clock = TickClock{}
	}
	return &PhysicsSystem{tuning: tuning, clock: clock}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	dt := ps.clock.Delta()
	t := ps.tuning.Current()

	pw.Step(dt)

	angularDecay := math.Exp(-t.AngularDamping * dt)

	ecs.ForEach(w, component.DieComponent, func(e ecs.Entity, die *component.Die) {
		motion, ok := ecs.Get(w, e, component.DieMotionComponent)
		if !ok {
			return
		}
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok || body.Body == nil {
			return
		}
		transform, ok := ecs.Get(w, e, component.Transform3DComponent)
		if !ok {
			return
		}

		motion.VerticalVel += t.Gravity * dt
		motion.Height += motion.VerticalVel * dt

		rest := die.HalfExtent
		if motion.Height <= rest {
			motion.Height = rest
			if motion.VerticalVel < 0 {
				// Felt contacts average the die and table coefficients.
				restitution := 0.5 * (t.Die.Restitution + t.Table.Restitution)
				motion.VerticalVel = -motion.VerticalVel * restitution
			}
			if math.Abs(motion.VerticalVel) < restSpeed {
				motion.VerticalVel = 0
			}
		}

		motion.Spin = motion.Spin.Mul(angularDecay)
		transform.Tumble = transform.Tumble.Add(motion.Spin.Mul(dt))

		p := body.Body.Position()
		transform.Position[0] = p.X
		transform.Position[1] = motion.Height
		transform.Position[2] = p.Y
		transform.Yaw = body.Body.Angle()
	})
}
