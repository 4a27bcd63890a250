package system

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"dicetable/config"
	"dicetable/ecs"
	"dicetable/ecs/component"
	"dicetable/ecs/entity"
)

// UIFill is the power-meter collaborator. A nil fill is a silent no-op.
type UIFill interface {
	SetFillRatio(float64)
}

var up = mgl64.Vec3{0, 1, 0}

// ThrowRequest is the spawn pose and kick for one release, consumed
// immediately by the physics world.
type ThrowRequest struct {
	OriginA, OriginB   mgl64.Vec3
	ImpulseA, ImpulseB mgl64.Vec3
	TorqueA, TorqueB   mgl64.Vec3
}

// ThrowSystem runs the Idle/Charging state machine over the ThrowCharge
// component and releases dice pairs into the physics world.
type ThrowSystem struct {
	tuning *config.Store
	fill   UIFill
	clock  Clock
}

func NewThrowSystem(tuning *config.Store, fill UIFill, clock Clock) *ThrowSystem {
	if clock == nil {
		clock = TickClock{}
	}
	return &ThrowSystem{tuning: tuning, fill: fill, clock: clock}
}

func (ts *ThrowSystem) Update(w *ecs.World) {
	if ts == nil || w == nil {
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

	chargeEnt, ok := ecs.First(w, component.ThrowChargeComponent)
	if !ok {
		return
	}
	charge, ok := ecs.Get(w, chargeEnt, component.ThrowChargeComponent)
	if !ok {
		return
	}

	t := ts.tuning.Current()
	charge.Max = t.ChargeMax

	// Idle -> Charging. Re-pressing while already charging is filtered out by
	// the Charging flag.
	if input.ChargePressed && !charge.Charging {
		charge.Current = 0
		charge.Charging = true
	}

	if input.ChargeHeld && charge.Charging {
		charge.Current += t.ChargeRate * ts.clock.Delta()
		if charge.Current > charge.Max {
			charge.Current = charge.Max
		}
		ts.setFill(charge.Ratio())
	}

	if input.ChargeReleased && charge.Charging {
		charge.Charging = false
		ts.release(w, charge.Current, t)
		charge.Current = 0
		ts.setFill(0)
	}
}

func (ts *ThrowSystem) release(w *ecs.World, charge float64, t config.Tuning) {
	camEnt, ok := ecs.First(w, component.CameraRigComponent)
	if !ok {
		return
	}
	rig, ok := ecs.Get(w, camEnt, component.CameraRigComponent)
	if !ok {
		return
	}
	camT, ok := ecs.Get(w, camEnt, component.Transform3DComponent)
	if !ok {
		return
	}

	table := component.Table{HalfX: t.Table.HalfX, HalfZ: t.Table.HalfZ, Margin: t.Table.Margin}
	if tableEnt, ok := ecs.First(w, component.TableComponent); ok {
		if tb, ok := ecs.Get(w, tableEnt, component.TableComponent); ok {
			table = *tb
		}
	}

	req := ComputeThrow(*rig, camT.Position, table, t, charge)

	// The previous pair is done the moment a new throw lands on the felt.
	clearDice(w)

	if _, err := entity.NewDie(w, 1, req.OriginA, req.ImpulseA, req.TorqueA, t); err != nil {
		log.Printf("throw: spawn die 1: %v", err)
	}
	if _, err := entity.NewDie(w, 2, req.OriginB, req.ImpulseB, req.TorqueB, t); err != nil {
		log.Printf("throw: spawn die 2: %v", err)
	}

	w.Events().Push(ecs.Event{Type: ecs.EventThrow, Data: ecs.ThrowEvent{
		Charge:  charge,
		Origin:  req.OriginA,
		Impulse: req.ImpulseA,
	}})
}

func (ts *ThrowSystem) setFill(r float64) {
	if ts == nil || ts.fill == nil {
		return
	}
	ts.fill.SetFillRatio(r)
}

func clearDice(w *ecs.World) {
	pw := w.PhysicsWorld()
	for _, e := range w.Query(component.DieComponent.ID()) {
		if pw != nil {
			pw.RemoveDie(e)
		}
		w.DestroyEntity(e)
	}
}

// ComputeThrow maps camera pose and charge level onto spawn parameters for
// the dice pair. The origin sits one unit ahead of the camera at clearance
// height, clamped into the margin-reduced table rectangle. Torques differ per
// die so the pair never lands identically.
func ComputeThrow(rig component.CameraRig, camPos mgl64.Vec3, table component.Table, t config.Tuning, charge float64) ThrowRequest {
	forwardFlat, _ := rig.ForwardFlat()

	origin := camPos.Add(forwardFlat.Mul(1.0))
	origin[1] = t.ClearanceHeight
	origin[0], origin[2] = table.ClampSpawn(origin[0], origin[2])

	lateral := forwardFlat.Cross(up)
	if l := lateral.Len(); l > 1e-9 {
		lateral = lateral.Mul(1 / l)
	}

	impulse := forwardFlat.Mul(charge * t.ImpulseScale)

	return ThrowRequest{
		OriginA:  origin.Add(lateral.Mul(t.LateralOffset)),
		OriginB:  origin.Sub(lateral.Mul(t.LateralOffset)),
		ImpulseA: impulse,
		ImpulseB: impulse.Sub(lateral.Mul(t.LateralImpulse)),
		TorqueA:  mgl64.Vec3{t.TorqueA[0], t.TorqueA[1], t.TorqueA[2]},
		TorqueB:  mgl64.Vec3{t.TorqueB[0], t.TorqueB[1], t.TorqueB[2]},
	}
}
