package region

// IterationMode selects which ring(s) an Iterator walks.
type IterationMode int

const (
	// AllObjects walks the primary ring then, if non-empty, the secondary
	// ring.
	AllObjects IterationMode = iota
	// TrivialOnly walks only the ring partitioned as trivial.
	TrivialOnly
	// NonTrivialOnly walks only the ring partitioned as non-trivial.
	NonTrivialOnly
)

// Iterator walks a region's membership without support for mutating the
// ring it walks - sweep uses its own hand-written traversal for that.
// Advancing uses getNextAnyMark, so an object's mark state never affects
// iteration order.
type Iterator struct {
	region      *Region
	mode        IterationMode
	current     *Object
	onSecondary bool
	done        bool
}

// NewIterator returns an Iterator over region in the given mode, positioned
// before the first matching object.
func NewIterator(region *Region, mode IterationMode) *Iterator {
	it := &Iterator{region: region, mode: mode}
	it.current, it.onSecondary, it.done = it.firstNode()
	return it
}

func (it *Iterator) firstNode() (*Object, bool, bool) {
	primaryTrivial := it.region.iso.IsTrivial()

	switch it.mode {
	case TrivialOnly:
		if primaryTrivial {
			return it.region.meta.next, false, it.region.meta.next == it.region.meta
		}
		return it.region.nextNotRoot, true, it.region.nextNotRoot == it.region.meta
	case NonTrivialOnly:
		if primaryTrivial {
			return it.region.nextNotRoot, true, it.region.nextNotRoot == it.region.meta
		}
		return it.region.meta.next, false, it.region.meta.next == it.region.meta
	default: // AllObjects
		head := it.region.meta.next
		return head, false, head == it.region.meta
	}
}

// Next reports whether a further object is available and, if so, returns
// it.
func (it *Iterator) Next() (*Object, bool) {
	if it.done {
		return nil, false
	}

	obj := it.current
	next := obj.getNextAnyMark()

	if next == it.region.meta {
		if it.mode == AllObjects && !it.onSecondary && it.region.lastNotRoot != it.region.meta {
			it.current = it.region.nextNotRoot
			it.onSecondary = true
			it.done = it.current == it.region.meta
		} else {
			it.done = true
		}
	} else {
		it.current = next
	}

	return obj, true
}
