package ecs

import "iter"

const absent = -1

// Table stores one component type keyed by entity.
// Iteration order is the order in which entities first received the component.
type Table[T any] struct {
	sparse []int32 // entity -> index into dense, absent when missing
	dense  []Entity
	data   []T
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{}
}

// Set attaches or replaces the component for e.
func (t *Table[T]) Set(e Entity, v T) {
	if idx, ok := t.index(e); ok {
		t.data[idx] = v
		return
	}
	for int(e) >= len(t.sparse) {
		t.sparse = append(t.sparse, absent)
	}
	t.sparse[e] = int32(len(t.dense))
	t.dense = append(t.dense, e)
	t.data = append(t.data, v)
}

// Get returns a pointer to the component for e, or nil if e has none.
// The pointer stays valid until the next Set of a new entity.
func (t *Table[T]) Get(e Entity) *T {
	idx, ok := t.index(e)
	if !ok {
		return nil
	}
	return &t.data[idx]
}

// Has reports whether e has this component.
func (t *Table[T]) Has(e Entity) bool {
	_, ok := t.index(e)
	return ok
}

// Len returns the number of entities holding the component.
func (t *Table[T]) Len() int {
	return len(t.dense)
}

// All iterates entities and their components in insertion order.
func (t *Table[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for i, e := range t.dense {
			if !yield(e, &t.data[i]) {
				return
			}
		}
	}
}

// Entities returns a copy of the entities holding the component.
func (t *Table[T]) Entities() []Entity {
	out := make([]Entity, len(t.dense))
	copy(out, t.dense)
	return out
}

func (t *Table[T]) index(e Entity) (int, bool) {
	if int(e) >= len(t.sparse) {
		return 0, false
	}
	idx := t.sparse[e]
	if idx == absent {
		return 0, false
	}
	return int(idx), true
}

// Tags is a presence-only table.
type Tags = Table[struct{}]

// NewTags creates an empty tag table.
func NewTags() *Tags {
	return NewTable[struct{}]()
}

// Add marks e with the tag.
func Add(t *Tags, e Entity) {
	t.Set(e, struct{}{})
}
