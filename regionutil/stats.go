package regionutil

import "math/bits"

// SizeClass is a compact, lossy encoding of a byte count: the bit length of
// the value rounded up to the next power of two. A region keeps its prior
// sweep's memory_used in this form rather than as a raw byte count, matching
// the source's use of a small size-class representation for the GC trigger
// baseline.
type SizeClass uint8

// EncodeSizeClass rounds bytes up to the next power of two and returns its
// exponent, offset by one so that 0 is reserved for "no bytes recorded yet"
// (the zero value of SizeClass, which GCPolicy.ShouldCollect reads as "this
// region has never been swept"). EncodeSizeClass(0) and every non-positive
// input is 0.
func EncodeSizeClass(byteCount int) SizeClass {
	if byteCount <= 0 {
		return 0
	}
	return SizeClass(bits.Len(uint(byteCount-1)) + 1)
}

// DecodeSizeClass returns the power-of-two byte count a SizeClass encodes.
func DecodeSizeClass(class SizeClass) int {
	if class == 0 {
		return 0
	}
	return 1 << uint(class-1)
}

// Statistics tracks a region's memory accounting: the live byte count
// observed during the last sweep (CurrentMemoryUsed), updated incrementally
// on allocation, and the size-class snapshot of that count taken at the end
// of the last sweep (PreviousMemoryUsed), used by a GC trigger heuristic.
type Statistics struct {
	CurrentMemoryUsed  int
	PreviousMemoryUsed SizeClass
}

// Clear resets both counters to zero.
func (s *Statistics) Clear() {
	s.CurrentMemoryUsed = 0
	s.PreviousMemoryUsed = 0
}

// AddAllocation bumps CurrentMemoryUsed by the size of a newly allocated
// object's payload.
func (s *Statistics) AddAllocation(byteCount int) {
	s.CurrentMemoryUsed += byteCount
}

// RecordSweep snapshots CurrentMemoryUsed into PreviousMemoryUsed at the end
// of a sweep, once the caller has already replaced CurrentMemoryUsed with
// the surviving set's byte count.
func (s *Statistics) RecordSweep() {
	s.PreviousMemoryUsed = EncodeSizeClass(s.CurrentMemoryUsed)
}

// Merge folds other's memory accounting into s, as when a donor region's
// rings are absorbed by merge_internal. CurrentMemoryUsed sums directly;
// PreviousMemoryUsed decodes both size classes, sums the byte counts, and
// re-encodes. The original source instead doubled the donor's size class in
// place of this sum, which double-counts or drops one side depending on
// which region is smaller - this is the corrected behaviour.
func (s *Statistics) Merge(other *Statistics) {
	s.CurrentMemoryUsed += other.CurrentMemoryUsed
	combined := DecodeSizeClass(s.PreviousMemoryUsed) + DecodeSizeClass(other.PreviousMemoryUsed)
	s.PreviousMemoryUsed = EncodeSizeClass(combined)
}
