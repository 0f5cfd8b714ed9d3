// Package extref implements the external reference table: a per-region map
// from opaque, stable handles to interior objects. Generic over the target
// type so it carries no dependency on the region package; region
// instantiates Table[*region.Object].
package extref

import (
	"github.com/dolthub/swiss"
	"github.com/google/uuid"
)

// Handle is an opaque, stable reference to an object inside a region.
// Handles must remain valid and non-colliding across region merges, so
// they are generated from a UUID rather than a per-region counter.
type Handle uuid.UUID

// Table maps handles to interior objects and back.
type Table[V comparable] struct {
	byHandle *swiss.Map[Handle, V]
	byTarget *swiss.Map[V, Handle]
}

// New returns an empty external reference table.
func New[V comparable]() *Table[V] {
	return &Table[V]{
		byHandle: swiss.NewMap[Handle, V](8),
		byTarget: swiss.NewMap[V, Handle](8),
	}
}

// Insert returns a handle for target, minting a new one if target has none
// yet or returning the existing one otherwise.
func (t *Table[V]) Insert(target V) Handle {
	if h, ok := t.byTarget.Get(target); ok {
		return h
	}
	h := Handle(uuid.New())
	t.byHandle.Put(h, target)
	t.byTarget.Put(target, h)
	return h
}

// Resolve looks up the object a handle refers to.
func (t *Table[V]) Resolve(h Handle) (V, bool) {
	return t.byHandle.Get(h)
}

// Erase drops target's handle entry, if any. Called when a trivial object
// holding a handle is swept.
func (t *Table[V]) Erase(target V) {
	h, ok := t.byTarget.Get(target)
	if !ok {
		return
	}
	t.byTarget.Delete(target)
	t.byHandle.Delete(h)
}

// Merge absorbs other's entries into t, used during a region merge.
func (t *Table[V]) Merge(other *Table[V]) {
	other.byHandle.Iter(func(h Handle, v V) bool {
		if _, ok := t.byTarget.Get(v); !ok {
			t.byHandle.Put(h, v)
			t.byTarget.Put(v, h)
		}
		return false
	})
}

// Len reports the number of live handles.
func (t *Table[V]) Len() int {
	return t.byHandle.Count()
}
