//go:build !debug_traceregion

package regionutil_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/objring/traceregion/regionutil"
)

func TestDebugAssertNoOpsOutsideDebugBuild(t *testing.T) {
	require.NotPanics(t, func() {
		regionutil.DebugAssert(false, "would panic under debug_traceregion")
	})
}
