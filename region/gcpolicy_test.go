package region_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/objring/traceregion/region"
	"github.com/objring/traceregion/regionutil"
)

func TestDefaultGCPolicyNeverTriggersBeforeFirstSweep(t *testing.T) {
	policy := region.DefaultGCPolicy()
	stats := regionutil.Statistics{CurrentMemoryUsed: 1_000_000}
	require.False(t, policy.ShouldCollect(stats))
}

func TestDefaultGCPolicyTriggersAtDoubledUsage(t *testing.T) {
	policy := region.DefaultGCPolicy()

	var stats regionutil.Statistics
	stats.AddAllocation(100)
	stats.RecordSweep()
	previous := regionutil.DecodeSizeClass(stats.PreviousMemoryUsed)

	stats.CurrentMemoryUsed = 2*previous - 1
	require.False(t, policy.ShouldCollect(stats))

	stats.CurrentMemoryUsed = 2 * previous
	require.True(t, policy.ShouldCollect(stats))
}
