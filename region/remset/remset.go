// Package remset implements the remembered set: a per-region table of
// cross-region references to immutables and cowns. It is generic over the
// key type so it carries no dependency on the region package's Object type;
// region instantiates Set[*region.Object].
package remset

import "github.com/dolthub/swiss"

// TransferMode states, on Insert, whether the caller's own reference-count
// contribution to target goes with the call or stays with the caller. Set
// keeps no reference counts: Insert records target the same way under
// either mode and neither acquires nor consumes a reference.
type TransferMode uint8

const (
	// NoTransfer: the caller's reference, if any, stays with the caller.
	NoTransfer TransferMode = iota
	// YesTransfer: the caller's existing reference goes with this insert.
	YesTransfer
)

type entry[K comparable] struct {
	marked bool
}

// Set is a region's remembered set: entries survive across GC cycles until
// a sweep finds them unmarked.
type Set[K comparable] struct {
	table *swiss.Map[K, *entry[K]]
}

// New returns an empty remembered set.
func New[K comparable]() *Set[K] {
	return &Set[K]{table: swiss.NewMap[K, *entry[K]](8)}
}

// Insert records target as reachable from this region. transfer decides
// reference-count bookkeeping the caller performs around the call; Insert
// itself only needs to know whether target is already tracked.
func (s *Set[K]) Insert(target K, transfer TransferMode) {
	if _, ok := s.table.Get(target); ok {
		return
	}
	s.table.Put(target, &entry[K]{})
}

// Merge absorbs other's entries into s, used when one region's remembered
// set is folded into another's during a region merge.
func (s *Set[K]) Merge(other *Set[K]) {
	other.table.Iter(func(k K, _ *entry[K]) bool {
		if _, ok := s.table.Get(k); !ok {
			s.table.Put(k, &entry[K]{})
		}
		return false
	})
}

// Mark flags target as reached this GC cycle and bumps markedCount the
// first time target is marked in this cycle.
func (s *Set[K]) Mark(target K, markedCount *int) {
	e, ok := s.table.Get(target)
	if !ok {
		return
	}
	if !e.marked {
		e.marked = true
		*markedCount++
	}
}

// SweepSet drops every entry not marked this cycle and clears the mark bit
// on every entry that survives, readying the set for the next cycle. It
// returns the dropped keys so the caller can release whatever reference
// count the set held on them.
func (s *Set[K]) SweepSet() []K {
	var dropped []K
	s.table.Iter(func(k K, e *entry[K]) bool {
		if !e.marked {
			dropped = append(dropped, k)
		} else {
			e.marked = false
		}
		return false
	})
	for _, k := range dropped {
		s.table.Delete(k)
	}
	return dropped
}

// Erase removes target from the set unconditionally, used when a reference
// is dropped outside of a GC cycle.
func (s *Set[K]) Erase(target K) {
	s.table.Delete(target)
}

// Len reports the number of tracked entries.
func (s *Set[K]) Len() int {
	return s.table.Count()
}
