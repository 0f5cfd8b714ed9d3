package remset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/objring/traceregion/region/remset"
)

func TestInsertIsIdempotent(t *testing.T) {
	s := remset.New[string]()
	s.Insert("a", remset.NoTransfer)
	s.Insert("a", remset.YesTransfer)
	require.Equal(t, 1, s.Len())
}

func TestMarkOnlyCountsFirstMarkPerCycle(t *testing.T) {
	s := remset.New[string]()
	s.Insert("a", remset.NoTransfer)

	var marked int
	s.Mark("a", &marked)
	s.Mark("a", &marked)
	require.Equal(t, 1, marked)
}

func TestMarkOfUntrackedKeyIsANoOp(t *testing.T) {
	s := remset.New[string]()
	var marked int
	s.Mark("never-inserted", &marked)
	require.Equal(t, 0, marked)
}

func TestSweepSetDropsUnmarkedAndResetsSurvivors(t *testing.T) {
	s := remset.New[string]()
	s.Insert("survivor", remset.NoTransfer)
	s.Insert("garbage", remset.NoTransfer)

	var marked int
	s.Mark("survivor", &marked)

	dropped := s.SweepSet()
	require.ElementsMatch(t, []string{"garbage"}, dropped)
	require.Equal(t, 1, s.Len())

	// The survivor's mark bit is cleared, so a second sweep with no
	// intervening Mark call drops it too.
	dropped = s.SweepSet()
	require.ElementsMatch(t, []string{"survivor"}, dropped)
	require.Equal(t, 0, s.Len())
}

func TestEraseRemovesRegardlessOfMarkState(t *testing.T) {
	s := remset.New[string]()
	s.Insert("a", remset.NoTransfer)
	s.Erase("a")
	require.Equal(t, 0, s.Len())
}

func TestMergeUnionsEntriesWithoutDuplicates(t *testing.T) {
	a := remset.New[string]()
	a.Insert("shared", remset.NoTransfer)
	a.Insert("a-only", remset.NoTransfer)

	b := remset.New[string]()
	b.Insert("shared", remset.NoTransfer)
	b.Insert("b-only", remset.NoTransfer)

	a.Merge(b)
	require.Equal(t, 3, a.Len())
}
