package region

import "github.com/objring/traceregion/regionutil"

// mark performs a depth-first traversal from the region's iso using an
// explicit worklist, never host recursion, so arbitrarily deep regions
// cannot overflow the call stack.
func (r *Region) mark() int {
	worklist := &Worklist{}
	marked := 0

	if r.iso.descriptor.Trace != nil {
		r.iso.descriptor.Trace(r.iso, worklist)
	}

	for !worklist.Empty() {
		obj := worklist.Pop()
		if obj == nil {
			continue
		}
		if isTraceRegionObject(obj) {
			regionutil.DebugAssert(false, "mark: traced field points at region metadata")
			continue
		}

		if obj.kind == refKindRC || obj.kind == refKindCown {
			r.remSet.Mark(obj, &r.markedRemSetCount)
			continue
		}

		switch obj.tag {
		case tagISO:
			// Root of a subregion (or another region's iso reached by a
			// stray same-descriptor edge) - not traced through.
			continue
		case tagMarked:
			continue
		case tagSCCPtr:
			r.remSet.Mark(obj.sccRoot, &r.markedRemSetCount)
		case tagUnmarked:
			obj.mark()
			marked++
			if obj.descriptor.Trace != nil {
				obj.descriptor.Trace(obj, worklist)
			}
		default:
			regionutil.DebugAssert(false, regionutil.CorruptHeaderError.Error())
		}
	}

	return marked
}
