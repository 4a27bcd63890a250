package ecs

import "dicetable/ecs/component"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, and system order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	systems  []System
	events   EventQueue

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity marks an entity as dead and drops its components.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(int(e.id()))
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

// Query returns the entities that carry every listed component.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	base := w.stores[ids[0]]
	if base == nil {
		return nil
	}
	for _, id := range ids[1:] {
		other := w.stores[id]
		if other == nil {
			return nil
		}
		if other.Len() < base.Len() {
			base = other
		}
	}
	out := make([]Entity, 0, base.Len())
outer:
	for _, rawID := range base.Entities() {
		for _, id := range ids {
			s := w.stores[id]
			if s == nil || !s.Has(rawID) {
				continue outer
			}
		}
		e := w.entities.resolve(entityID(rawID))
		if e.Valid() {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) store(id component.ComponentID) *SparseSet {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// Entity is a generational handle: the low 32 bits are the slot id issued by
// the entityStore, the high 32 bits the generation the slot had at issue time.
// A destroyed slot bumps its generation, so stale handles stop resolving.
type Entity uint64

type entityID uint32
type generation uint32

func handleFor(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(e)
}

func (e Entity) generation() generation {
	return generation(e >> 32)
}

// Valid reports whether this is a real handle; the zero Entity is the null
// handle and never refers to a slot.
func (e Entity) Valid() bool {
	return e.id() != 0
}

// entityStore tracks entity generations and free ids.
type entityStore struct {
	nextID entityID
	gen    []generation
	free   []entityID
}

func (s *entityStore) create() Entity {
	if s == nil {
		return 0
	}
	var id entityID
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.nextID++
		id = s.nextID
		s.gen = append(s.gen, 0)
	}
	return handleFor(id, s.gen[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if s == nil || !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.gen[idx]++
	s.free = append(s.free, e.id())
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if s == nil || e.id() == 0 || int(e.id()) > len(s.gen) {
		return false
	}
	return s.gen[e.id()-1] == e.generation()
}

// resolve maps a raw id to a live entity handle, or 0 if the slot is stale.
func (s *entityStore) resolve(id entityID) Entity {
	if s == nil || id == 0 || int(id) > len(s.gen) {
		return 0
	}
	return handleFor(id, s.gen[id-1])
}
