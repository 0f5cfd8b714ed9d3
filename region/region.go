package region

import (
	"io"

	"github.com/cockroachdb/errors"
	"log/slog"

	"github.com/objring/traceregion/region/extref"
	"github.com/objring/traceregion/region/remset"
	"github.com/objring/traceregion/regionutil"
)

// RegionKind distinguishes the trace (mark-and-sweep) region kind this
// package implements from other kinds an external collaborator may define.
type RegionKind uint8

const (
	KindTrace RegionKind = iota
	// KindArena identifies a bulk-release region kind. The core dispatches
	// to it by kind when collecting an unreachable subregion, but the
	// arena kind itself is an external collaborator - this module does not
	// implement one.
	KindArena
)

// Region is a single trace region: a container of mutually reachable
// objects rooted at an iso, reclaimed together by mark-and-sweep or bulk
// release.
type Region struct {
	kind RegionKind

	meta        *Object
	nextNotRoot *Object
	lastNotRoot *Object
	iso         *Object

	stats             regionutil.Statistics
	markedRemSetCount int

	remSet  *remset.Set[*Object]
	extRefs *extref.Table[*Object]

	allocator Allocator
	logger    *slog.Logger

	// Policy is the optional GC-trigger heuristic a caller may consult
	// before calling GC. The region only maintains the counters it reads;
	// it never calls GC on its own.
	Policy GCPolicy

	// pendingDestruction holds objects unlinked from the non-trivial ring
	// during the current sweep, between Phase A (find_iso_fields) and
	// Phase B (destructor + deallocation).
	pendingDestruction []*Object
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Create builds a new trace region rooted at a freshly allocated iso of the
// given descriptor. A nil logger and nil allocator are replaced with a
// discard logger and a pooled default allocator respectively.
func Create(allocator Allocator, logger *slog.Logger, descriptor *Descriptor, value any) (*Region, *Object, error) {
	if allocator == nil {
		allocator = NewPooledAllocator()
	}
	if logger == nil {
		logger = discardLogger()
	}

	buf, err := allocator.Alloc(descriptor.Size)
	if err != nil {
		return nil, nil, errors.Wrap(err, "region.Create: allocating iso")
	}

	meta := &Object{descriptor: regionMetaDescriptor}
	iso := NewObject(descriptor, value)
	iso.tag = tagISO
	iso.buf = buf

	r := &Region{
		kind:      KindTrace,
		meta:      meta,
		iso:       iso,
		allocator: allocator,
		logger:    logger,
		remSet:    remset.New[*Object](),
		extRefs:   extref.New[*Object](),
		Policy:    DefaultGCPolicy(),
	}
	meta.Value = r
	iso.ownerRegion = r

	meta.next = iso
	iso.next = meta
	r.nextNotRoot = meta
	r.lastNotRoot = meta

	r.stats.AddAllocation(descriptor.Size)

	logger.Debug("Region::Create", slog.String("descriptor", descriptor.Name), slog.Int("size", descriptor.Size))
	return r, iso, nil
}

// Alloc grows the region by one object of the given descriptor, appending
// it immediately after the metadata into whichever ring matches its
// triviality.
func (r *Region) Alloc(descriptor *Descriptor, value any) (*Object, error) {
	buf, err := r.allocator.Alloc(descriptor.Size)
	if err != nil {
		return nil, errors.Wrap(err, "region.Alloc")
	}

	obj := NewObject(descriptor, value)
	obj.buf = buf
	r.appendOne(obj)
	r.stats.AddAllocation(descriptor.Size)

	r.logger.Debug("Region::Alloc", slog.String("descriptor", descriptor.Name), slog.Int("size", descriptor.Size))
	return obj, nil
}

// Insert registers target, which must be immutable or a cown (refKindRC or
// refKindCown), as a cross-region reference held by this region. If target
// is an SCC pointer into a frozen immutable component, it is resolved to
// the component root before insertion.
func (r *Region) Insert(target *Object, transfer remset.TransferMode) error {
	if target.tag == tagSCCPtr {
		target = target.sccRoot
	}
	if target.kind != refKindRC && target.kind != refKindCown {
		regionutil.DebugAssert(false, "Insert: target is neither RC nor cown")
		return errors.New("region.Insert: target must be immutable or cown")
	}

	r.remSet.Insert(target, transfer)
	r.logger.Debug("Region::Insert", slog.Int("kind", int(target.kind)))
	return nil
}

// Merge splices other's rings into r in O(1) and absorbs its remembered set
// and external reference table. other must be a different, trace-kind
// region; after Merge, other is no longer usable.
func (r *Region) Merge(other *Region) error {
	if other == r {
		regionutil.DebugAssert(false, "Merge: cannot merge a region with itself")
		return errors.New("region.Merge: cannot merge a region with itself")
	}
	if other.kind != KindTrace || r.kind != KindTrace {
		return errors.Wrap(regionutil.KindMismatchError, "region.Merge")
	}

	r.mergeInternal(other)
	r.extRefs.Merge(other.extRefs)
	r.remSet.Merge(other.remSet)
	regionutil.DebugValidate(r)

	r.logger.Debug("Region::Merge", slog.Int("donor_memory_used", other.stats.CurrentMemoryUsed))
	return nil
}

// SwapRoot rotates r's iso from prev to next. prev must be r's current iso;
// next must already be a member of r and distinct from the metadata.
func (r *Region) SwapRoot(prev, next *Object) error {
	if prev != r.iso {
		regionutil.DebugAssert(false, "SwapRoot: prev is not the current iso")
		return errors.New("region.SwapRoot: prev is not the current iso")
	}
	if next == r.meta || next == prev {
		regionutil.DebugAssert(false, "SwapRoot: next must be a distinct, non-metadata member")
		return errors.New("region.SwapRoot: invalid next")
	}
	// Full membership is an O(ring) check, left to DebugAssert so a release
	// build keeps swap_root's O(1) cost; the cheap identity checks above
	// run unconditionally as this module's own, stricter addition. next may
	// currently sit in either ring - the triviality-flip case moves the
	// secondary ring into the primary slot as part of the same swap - so
	// membership is checked across both.
	regionutil.DebugAssert(r.isRegionMember(next), "SwapRoot: next is not a member of r")

	r.swapRootInternal(prev, next)
	regionutil.DebugValidate(r)
	r.logger.Debug("Region::SwapRoot")
	return nil
}

// CurrentIso returns the region's current iso.
func (r *Region) CurrentIso() *Object {
	return r.iso
}

// Released reports whether Release has already run on r.
func (r *Region) Released() bool {
	return r.meta.Value == nil
}

// Stats returns a copy of the region's memory-usage accounting.
func (r *Region) Stats() regionutil.Statistics {
	return r.stats
}

// ExternalHandle returns a stable opaque handle for target, minting one if
// it has none yet.
func (r *Region) ExternalHandle(target *Object) extref.Handle {
	target.hasExternalHandle = true
	return r.extRefs.Insert(target)
}

// ResolveExternalHandle looks up the object a handle refers to.
func (r *Region) ResolveExternalHandle(h extref.Handle) (*Object, bool) {
	return r.extRefs.Resolve(h)
}
