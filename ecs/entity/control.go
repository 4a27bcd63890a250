package entity

import (
	"dicetable/config"
	"dicetable/ecs"
	"dicetable/ecs/component"
)

// NewThrowControl spawns the control entity that carries per-frame input and
// the charge state machine.
func NewThrowControl(w *ecs.World, t config.Tuning) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.InputComponent, component.Input{}); err != nil {
		return 0, err
	}
	charge := component.ThrowCharge{Max: t.ChargeMax}
	if err := ecs.Add(w, e, component.ThrowChargeComponent, charge); err != nil {
		return 0, err
	}
	return e, nil
}
