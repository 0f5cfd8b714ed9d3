package region

// TraceFunc enumerates the outgoing references of obj by pushing each onto
// worklist. It is called during mark for every UNMARKED object reached.
type TraceFunc func(obj *Object, worklist *Worklist)

// FinalizerFunc is invoked on an about-to-die object before its destructor
// runs. A finaliser may read sibling state reachable from obj but must not
// insert obj, or anything it reaches, back into the region.
type FinalizerFunc func(obj *Object)

// DestructorFunc tears down obj immediately before its storage is freed.
type DestructorFunc func(obj *Object)

// Descriptor is the immutable, process-wide record every object of a given
// type shares: its payload size, how to trace it, and its optional
// finaliser and destructor. Descriptors are created once, typically as
// package-level values, and never mutated.
type Descriptor struct {
	// Name identifies the descriptor in logs; purely diagnostic.
	Name string

	// Size is the byte count of the object's payload, used for memory
	// accounting. It does not include the Object header itself.
	Size int

	// Trace enumerates outgoing references. May be nil for objects with no
	// outgoing references (e.g. leaf values).
	Trace TraceFunc

	// Finalizer, if set, is called before Destructor during sweep.
	Finalizer FinalizerFunc

	// Destructor, if set, is called immediately before deallocation.
	Destructor DestructorFunc

	// HasSubregionRefs marks a descriptor whose traced fields may include
	// isos of other regions. Such objects are never trivial: triviality
	// means no finaliser, no destructor, and no subregion references.
	HasSubregionRefs bool
}

// IsTrivial reports whether objects of this descriptor require no
// finalisation, no destruction, and hold no subregion references. Triviality
// is a static property of the descriptor, decided once and never per-object.
func (d *Descriptor) IsTrivial() bool {
	if d == nil {
		return true
	}
	return d.Finalizer == nil && d.Destructor == nil && !d.HasSubregionRefs
}

// regionMetaDescriptor is the singleton descriptor stamped on every region's
// metadata object. is_trace_region reduces to a single pointer comparison
// against this value, mirroring the descriptor-identity trick the source
// uses to recognise region metadata while walking a ring of otherwise
// ordinary objects.
var regionMetaDescriptor = &Descriptor{
	Name: "region-metadata",
	Size: 0,
}

// isTraceRegionObject reports whether obj is a region's own metadata node
// rather than an ordinary member.
func isTraceRegionObject(obj *Object) bool {
	return obj != nil && obj.descriptor == regionMetaDescriptor
}
