package region

// classTag is the 2-bit class every object carries. The source packs this
// into the low bits of the next pointer; per the design note on pointer
// tagging, this port keeps it as a separate field instead.
type classTag uint8

const (
	// tagUnmarked is an ordinary region member not yet visited this cycle.
	tagUnmarked classTag = iota
	// tagMarked is an ordinary region member visited this cycle.
	tagMarked
	// tagISO marks the region's sole entrypoint. Never marked or unmarked.
	tagISO
	// tagSCCPtr is a pointer into a frozen immutable strongly-connected
	// component; the real target is the object's sccRoot.
	tagSCCPtr
)

func (t classTag) String() string {
	switch t {
	case tagUnmarked:
		return "UNMARKED"
	case tagMarked:
		return "MARKED"
	case tagISO:
		return "ISO"
	case tagSCCPtr:
		return "SCC_PTR"
	default:
		return "INVALID"
	}
}

// refKind distinguishes the two variants of cross-region reference the
// remembered set tracks. These bits live alongside, not inside, the 2-bit
// ring tag: an object is never simultaneously RC/COWN and a region member,
// since RC and COWN objects are referenced, not contained, by the region.
type refKind uint8

const (
	refKindNone refKind = iota
	refKindRC
	refKindCown
)

// Object is the header every value participating in a region carries. User
// types embed or reference an *Object to join a region's ring; the payload
// itself lives wherever the caller's descriptor expects it, reachable from
// Value.
type Object struct {
	descriptor *Descriptor
	next       *Object
	tag        classTag
	kind       refKind

	// hasExternalHandle records whether an entry for this object exists in
	// the region's external reference table. Checked, and cleared, when a
	// trivial object is swept.
	hasExternalHandle bool

	// ownerRegion is valid only while tag == tagISO: it is the region this
	// object is the entrypoint for, stamped by Create and re-stamped by
	// SwapRoot. find_iso_fields compares a traced ISO's ownerRegion against
	// the region currently being collected to decide same-region vs.
	// cross-region.
	ownerRegion *Region

	// sccRoot is valid only while tag == tagSCCPtr: the frozen immutable
	// strongly-connected-component root this pointer resolves to.
	sccRoot *Object

	// buf is the backing storage this object's allocation returned. It is
	// returned to the region's allocator on deallocation.
	buf []byte

	// Value is the user payload associated with this object. The region
	// metadata object's Value holds the *Region it anchors.
	Value any
}

// NewObject allocates a region member with the given descriptor and
// payload. The returned Object is not yet linked into any ring; callers
// reach a region's ring through Region.Alloc, not by constructing Objects
// directly.
func NewObject(descriptor *Descriptor, value any) *Object {
	return &Object{descriptor: descriptor, tag: tagUnmarked, Value: value}
}

// NewRCObject constructs an object tagged as a reference-counted immutable,
// the kind of value a region's remembered set tracks rather than contains.
func NewRCObject(descriptor *Descriptor, value any) *Object {
	o := NewObject(descriptor, value)
	o.kind = refKindRC
	return o
}

// NewCownObject constructs an object tagged as a cown, the other kind of
// value a region's remembered set tracks rather than contains.
func NewCownObject(descriptor *Descriptor, value any) *Object {
	o := NewObject(descriptor, value)
	o.kind = refKindCown
	return o
}

// NewSCCPointer constructs a pointer into a frozen immutable
// strongly-connected component, resolved through root whenever it is
// inserted into a remembered set.
func NewSCCPointer(root *Object) *Object {
	return &Object{descriptor: root.descriptor, tag: tagSCCPtr, sccRoot: root}
}

// Descriptor returns the object's descriptor.
func (o *Object) Descriptor() *Descriptor {
	return o.descriptor
}

// OwnerRegion returns the region o anchors if o is currently an iso, or nil
// otherwise.
func (o *Object) OwnerRegion() *Region {
	return o.ownerRegion
}

// Tag returns a human-readable name for o's current class tag, for use in
// test assertions and debug logging.
func (o *Object) Tag() string {
	return o.tag.String()
}

// IsTrivial reports whether o's descriptor requires no finalisation,
// destruction, or subregion tracing.
func (o *Object) IsTrivial() bool {
	return o.descriptor.IsTrivial()
}

// IsISO reports whether o is a region's entrypoint.
func (o *Object) IsISO() bool {
	return o.tag == tagISO
}

// Allocated reports whether o still holds backing storage from its
// allocator. It becomes false once sweep deallocates o.
func (o *Object) Allocated() bool {
	return o.buf != nil
}

// HasExternalHandle reports whether an external-reference-table entry
// currently exists for o.
func (o *Object) HasExternalHandle() bool {
	return o.hasExternalHandle
}

func (o *Object) mark() {
	o.tag = tagMarked
}

func (o *Object) unmark() {
	o.tag = tagUnmarked
}

// getNextAnyMark returns the next object in the ring irrespective of class
// tag. Safe to call on any ring member, including the iso.
func (o *Object) getNextAnyMark() *Object {
	return o.next
}

// getNext returns the next object in the ring. Only legal on non-ISO
// members; calling it on the iso is a precondition violation because the
// iso's next slot is a terminator, not a peer link, by convention of this
// port (the source allows it and returns the metadata; callers here should
// use getNextAnyMark when they intend to reach the metadata).
func (o *Object) getNext() *Object {
	return o.next
}

// Worklist is the explicit stack mark uses in place of host-language
// recursion, so regions of arbitrary depth cannot overflow the call stack.
type Worklist struct {
	items []*Object
}

// Push adds obj to the worklist.
func (w *Worklist) Push(obj *Object) {
	w.items = append(w.items, obj)
}

// Pop removes and returns the most recently pushed object, or nil if empty.
func (w *Worklist) Pop() *Object {
	n := len(w.items)
	if n == 0 {
		return nil
	}
	obj := w.items[n-1]
	w.items[n-1] = nil
	w.items = w.items[:n-1]
	return obj
}

// Empty reports whether the worklist has no pending objects.
func (w *Worklist) Empty() bool {
	return len(w.items) == 0
}
