package component

import (
	"errors"
	"sync/atomic"
)

var ErrEntityNotAlive = errors.New("ecs: entity not alive")

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentHandle is the typed key for one component kind. Handles are issued
// once at package init via NewComponent and shared by every world.
type ComponentHandle[T any] struct {
	id ComponentID
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.id
}
