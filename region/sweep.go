package region

import (
	"log/slog"

	"github.com/objring/traceregion/regionutil"
)

// GC runs one mark-and-sweep cycle: mark from the iso, sweep both rings
// (non-trivial first), run two-phase destruction on the non-trivial ring's
// casualties, then recursively release any subregion left unreachable.
func (r *Region) GC() (survivors int, err error) {
	regionutil.DebugValidate(r)
	r.logger.Debug("Region::gc start", slog.Int("current_memory_used", r.stats.CurrentMemoryUsed))

	marked := r.mark()
	survivors, survivorBytes, collect := r.sweepAllRings(false)

	r.stats.CurrentMemoryUsed = survivorBytes
	r.remSet.SweepSet()
	r.stats.RecordSweep()

	r.drainCollect(collect)
	regionutil.DebugValidate(r)

	r.logger.Debug("Region::gc done",
		slog.Int("marked", marked),
		slog.Int("survivors", survivors),
		slog.Int("current_memory_used", r.stats.CurrentMemoryUsed))
	return survivors, nil
}

// Release destroys the region: it sweeps both rings including the iso
// itself, without a prior mark phase, then frees the metadata.
func (r *Region) Release() error {
	r.logger.Debug("Region::release")

	_, _, collect := r.sweepAllRings(true)
	r.remSet.SweepSet()
	r.drainCollect(collect)

	r.meta.Value = nil
	return nil
}

// sweepAllRings walks the non-trivial ring, runs two-phase destruction on
// what it collects, then walks the trivial ring. The order is load-bearing:
// a non-trivial finaliser may legally read a trivial sibling, so every
// trivial object must still be allocated when finalisers run.
func (r *Region) sweepAllRings(sweepAll bool) (survivors, survivorBytes int, collect *Worklist) {
	collect = &Worklist{}

	primaryIsTrivial := r.iso.IsTrivial()

	if primaryIsTrivial {
		ntCount, ntBytes := r.sweepSecondaryRing(collect)
		r.runTwoPhaseDestruction(collect)
		tCount, tBytes := r.sweepPrimaryRing(collect, sweepAll)
		return ntCount + tCount, ntBytes + tBytes, collect
	}

	ntCount, ntBytes := r.sweepPrimaryRing(collect, sweepAll)
	r.runTwoPhaseDestruction(collect)
	tCount, tBytes := r.sweepSecondaryRing(collect)
	return ntCount + tCount, ntBytes + tBytes, collect
}

// sweepPrimaryRing walks the primary ring starting at the metadata, unlinks
// every UNMARKED member, and either frees it immediately (if this ring is
// the trivial one) or queues it for two-phase destruction (if non-trivial).
// sweepAll additionally collects the iso itself instead of treating it as a
// survivor, for use by Release.
func (r *Region) sweepPrimaryRing(collect *Worklist, sweepAll bool) (survivors, survivorBytes int) {
	isNonTrivial := !r.iso.IsTrivial()

	prev := r.meta
	node := r.meta.next

	for node != r.meta {
		next := node.next

		if node.tag == tagISO {
			if !sweepAll {
				survivors++
				survivorBytes += node.descriptor.Size
				prev = node
				node = next
				continue
			}
			prev.next = next
			r.sweepObject(node, collect, isNonTrivial)
			node = next
			continue
		}

		if node.tag == tagMarked {
			node.unmark()
			survivors++
			survivorBytes += node.descriptor.Size
			prev = node
			node = next
			continue
		}

		regionutil.DebugAssert(node.tag == tagUnmarked, regionutil.CorruptHeaderError.Error())
		prev.next = next
		r.sweepObject(node, collect, isNonTrivial)
		node = next
	}

	return survivors, survivorBytes
}

// sweepSecondaryRing is sweepPrimaryRing's counterpart for the ring anchored
// by nextNotRoot/lastNotRoot rather than by an object's own next slot. The
// secondary ring never contains the iso.
func (r *Region) sweepSecondaryRing(collect *Worklist) (survivors, survivorBytes int) {
	isNonTrivial := r.iso.IsTrivial()

	var prev *Object
	node := r.nextNotRoot

	for node != r.meta {
		next := node.next

		if node.tag == tagMarked {
			node.unmark()
			survivors++
			survivorBytes += node.descriptor.Size
			prev = node
			node = next
			continue
		}

		regionutil.DebugAssert(node.tag == tagUnmarked, regionutil.CorruptHeaderError.Error())

		wasTail := node == r.lastNotRoot
		if prev == nil {
			r.nextNotRoot = next
		} else {
			prev.next = next
		}
		if wasTail {
			if prev == nil {
				r.lastNotRoot = r.meta
			} else {
				r.lastNotRoot = prev
			}
		}

		r.sweepObject(node, collect, isNonTrivial)
		node = next
	}

	return survivors, survivorBytes
}

// sweepObject disposes of a single unlinked ring member. Trivial members
// are erased from the external reference table and deallocated on the
// spot; non-trivial members are finalised and queued so that Phase A of
// two-phase destruction can run across the whole batch before any
// destructor executes.
func (r *Region) sweepObject(obj *Object, collect *Worklist, nonTrivial bool) {
	if !nonTrivial {
		if obj.hasExternalHandle {
			r.extRefs.Erase(obj)
		}
		r.deallocate(obj)
		return
	}

	if obj.descriptor.Finalizer != nil {
		obj.descriptor.Finalizer(obj)
	}
	r.pendingDestruction = append(r.pendingDestruction, obj)
}

// runTwoPhaseDestruction implements the two-phase rule: every pending
// object's iso-typed fields are collected (Phase A) before any destructor
// runs (Phase B), because a destructor may transitively free objects whose
// headers Phase A still needs to inspect.
func (r *Region) runTwoPhaseDestruction(collect *Worklist) {
	pending := r.pendingDestruction
	r.pendingDestruction = nil

	for _, obj := range pending {
		r.findIsoFields(obj, collect)
	}
	for _, obj := range pending {
		if obj.descriptor.Destructor != nil {
			obj.descriptor.Destructor(obj)
		}
		r.deallocate(obj)
	}
}

// findIsoFields traces obj's outgoing references and pushes onto collect
// every field that points at the iso of a different region. It must run
// before any destructor in the same batch, since a destructor may free the
// very objects whose region back-pointers this check still needs to read.
func (r *Region) findIsoFields(obj *Object, collect *Worklist) {
	if obj.descriptor.Trace == nil {
		return
	}
	fields := &Worklist{}
	obj.descriptor.Trace(obj, fields)
	for !fields.Empty() {
		f := fields.Pop()
		if f == nil || f.tag != tagISO {
			continue
		}
		if f.ownerRegion != r {
			collect.Push(f)
		}
	}
}

// deallocate releases obj's backing storage back to the region's allocator.
func (r *Region) deallocate(obj *Object) {
	if obj.buf != nil {
		r.allocator.Free(obj.buf)
		obj.buf = nil
	}
}

// drainCollect recursively releases every unreachable subregion found
// during sweep. Each popped object is the iso of a region no longer
// reachable through this one.
func (r *Region) drainCollect(collect *Worklist) {
	for !collect.Empty() {
		isoObj := collect.Pop()
		if isoObj == nil {
			continue
		}
		sub := isoObj.ownerRegion
		if sub == nil || sub == r {
			continue
		}

		switch sub.kind {
		case KindTrace:
			r.logger.Debug("Region::gc releasing unreachable subregion")
			_ = sub.Release()
		default:
			r.logger.Error("Region::gc cannot release non-trace subregion kind", slog.Int("kind", int(sub.kind)))
		}
	}
}
