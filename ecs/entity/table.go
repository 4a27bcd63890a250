package entity

import (
	"dicetable/config"
	"dicetable/ecs"
	"dicetable/ecs/component"
)

// NewTable spawns the static table entity. The matching wall shapes live in
// the physics world; this entity carries the bounds the throw and render
// paths read.
func NewTable(w *ecs.World, t config.TableTuning) (ecs.Entity, error) {
	e := w.CreateEntity()
	table := component.Table{
		HalfX:         t.HalfX,
		HalfZ:         t.HalfZ,
		Margin:        t.Margin,
		WallHeight:    t.WallHeight,
		WallThickness: t.WallThickness,
	}
	if err := ecs.Add(w, e, component.TableComponent, table); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.Transform3DComponent, component.Transform3D{}); err != nil {
		return 0, err
	}
	return e, nil
}
