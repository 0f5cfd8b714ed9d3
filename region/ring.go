package region

import "github.com/objring/traceregion/regionutil"

// append splices the chain [head...tail] into whichever ring matches head's
// triviality. New members are always inserted immediately after the
// metadata, at the front of the ring, not the back - this keeps the iso the
// terminal element of the primary ring without ever walking it.
func (r *Region) append(head, tail *Object) {
	if head.IsTrivial() == r.primaryIsTrivial() {
		tail.next = r.meta.next
		r.meta.next = head
		return
	}

	tail.next = r.nextNotRoot
	wasEmpty := r.lastNotRoot == r.meta
	r.nextNotRoot = head
	if wasEmpty {
		r.lastNotRoot = tail
	}
}

// appendOne is the single-object convenience form of append.
func (r *Region) appendOne(obj *Object) {
	r.append(obj, obj)
}

// primaryIsTrivial reports the triviality the primary ring is partitioned
// on: the iso's own triviality.
func (r *Region) primaryIsTrivial() bool {
	return r.iso.IsTrivial()
}

// isRegionMember walks both rings looking for obj: a prospective new iso
// may currently live in either, depending on whether it shares the current
// iso's triviality. Only called from regionutil.DebugAssert sites - an
// O(ring) membership check has no place in a release build's O(1)
// swap_root.
func (r *Region) isRegionMember(obj *Object) bool {
	it := NewIterator(r, AllObjects)
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		if node == obj {
			return true
		}
	}
	return false
}

// mergeInternal absorbs other's rings into r in O(1), per object class,
// without visiting a single member of either ring individually. The donor
// metadata is left for the caller to discard; mergeInternal does not free
// it.
func (r *Region) mergeInternal(other *Region) {
	// Primary ring of the donor: head is other.meta.next, terminated by the
	// donor's own iso.
	if other.meta.next != other.meta {
		r.append(other.meta.next, other.iso)
	}

	// Secondary ring of the donor.
	if other.lastNotRoot != other.meta {
		r.append(other.nextNotRoot, other.lastNotRoot)
	}

	// The donor's iso is now an interior node of r's ring rather than a
	// ring terminator, so it can no longer carry the ISO tag: a region may
	// have exactly one. The source does not appear to demote it, which
	// would leave a second ISO-tagged node inside the merged ring and
	// confuse both mark's "ISO means subregion root" rule and sweep's
	// terminal-detection - treated here the same way as the
	// previous_memory_used doubling bug: a correction, not a port.
	other.iso.tag = tagUnmarked
	other.iso.ownerRegion = nil

	r.stats.Merge(&other.stats)
}

// swapRootInternal rotates the region's iso from prev to next in O(1). next
// must already be a member of r, in either ring; SwapRoot checks that
// membership through regionutil.DebugAssert, in debug builds only.
//
// oroot is a loop variable, not necessarily prev: when the ring-swap branch
// below runs, oroot is reassigned to the tail of what was the secondary
// ring (now primary), which is the node the general relinking step must
// treat as "whoever currently terminates the primary ring" - it only
// coincides with prev when no ring swap happens.
func (r *Region) swapRootInternal(prev, next *Object) {
	regionutil.DebugAssert(prev == r.iso, "swapRootInternal: prev is not the current iso")
	regionutil.DebugAssert(next != r.meta, "swapRootInternal: next must not be the region metadata")

	oroot := prev

	if prev.IsTrivial() != next.IsTrivial() {
		// The rings exchange roles: the ring matching next's triviality
		// becomes primary, and the ring matching prev's triviality becomes
		// secondary, terminated by prev.
		oldPrimaryHead := r.meta.next
		r.meta.next = r.nextNotRoot
		r.nextNotRoot = oldPrimaryHead

		oldSecondaryTail := r.lastNotRoot
		r.lastNotRoot = prev
		prev.next = r.meta
		oroot = oldSecondaryTail
	}

	if oroot != next {
		// oroot currently terminates the (now-current) primary ring; x is
		// the ring's current head, y is next's current successor. Rotating
		// the cycle so next becomes terminal takes exactly three pointer
		// writes, independent of ring length.
		x := r.meta.next
		y := next.next

		oroot.next = x
		r.meta.next = y
	}

	next.next = r.meta
	next.tag = tagISO
	next.ownerRegion = r
	prev.tag = tagUnmarked
	prev.ownerRegion = nil
	r.iso = next
}
