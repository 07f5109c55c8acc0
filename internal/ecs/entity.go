// Package ecs provides a small entity/component store built from sparse sets.
// Each component type lives in its own Table, giving O(1) lookup by entity and
// dense, insertion-ordered iteration.
package ecs

import "fmt"

// Entity is an opaque identifier. It carries no data of its own.
type Entity uint32

// String returns a debug representation of the entity.
func (e Entity) String() string {
	return fmt.Sprintf("e%d", uint32(e))
}

// Registry mints entity identifiers.
// Identifiers are sequential and never reused.
type Registry struct {
	next Entity
}

// Create returns a fresh entity.
func (r *Registry) Create() Entity {
	e := r.next
	r.next++
	return e
}

// Len returns how many entities have been created.
func (r *Registry) Len() int {
	return int(r.next)
}
