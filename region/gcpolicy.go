package region

import "github.com/objring/traceregion/regionutil"

// GCPolicy is the GC-trigger heuristic the surrounding runtime layers over
// the counters this region maintains. The core never calls GC on its own;
// Policy.ShouldCollect is sugar a caller may consult, not a contract the
// core depends on.
type GCPolicy struct {
	// TriggerMultiplier is k in "allocated >= k * previous_live".
	TriggerMultiplier float64
}

// DefaultGCPolicy triggers once current memory use reaches twice the last
// sweep's size-class baseline (the live byte count rounded up to a power of
// two).
func DefaultGCPolicy() GCPolicy {
	return GCPolicy{TriggerMultiplier: 2.0}
}

// ShouldCollect applies the trigger heuristic to stats. A region that has
// never been swept (PreviousMemoryUsed == 0) is never flagged, since there
// is no baseline yet to compare against.
func (p GCPolicy) ShouldCollect(stats regionutil.Statistics) bool {
	previous := regionutil.DecodeSizeClass(stats.PreviousMemoryUsed)
	if previous == 0 {
		return false
	}
	return float64(stats.CurrentMemoryUsed) >= p.TriggerMultiplier*float64(previous)
}
