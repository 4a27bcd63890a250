package ecs

import "dicetable/ecs/component"

// Add attaches a component value to an entity, replacing any existing value.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if w == nil || !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(handle.ID()).Set(int(e.id()), &value)
	return nil
}

// Get returns a pointer to the entity's component for in-place mutation.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if w == nil || !w.IsAlive(e) {
		return nil, false
	}
	v := w.store(handle.ID()).Get(int(e.id()))
	if v == nil {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

// Has reports whether the entity carries the component.
func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	return w.store(handle.ID()).Has(int(e.id()))
}

// Remove detaches the component from the entity.
func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	return w.store(handle.ID()).Remove(int(e.id()))
}

// First returns some entity carrying the component, if any exists.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	for _, rawID := range w.store(handle.ID()).Entities() {
		e := w.entities.resolve(entityID(rawID))
		if e.Valid() {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits every entity carrying the component.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(e Entity, v *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(handle.ID())
	ids := append([]int(nil), s.Entities()...)
	for _, rawID := range ids {
		v := s.Get(rawID)
		cast, ok := v.(*T)
		if !ok {
			continue
		}
		fn(w.entities.resolve(entityID(rawID)), cast)
	}
}
