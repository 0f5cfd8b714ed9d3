package region_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/objring/traceregion/region"
)

func TestMergeAbsorbsDonorRingInConstantWork(t *testing.T) {
	trivial := &region.Descriptor{Name: "trivial", Size: 8}

	r1, _, err := region.Create(nil, nil, trivial, nil)
	require.NoError(t, err)
	r2, _, err := region.Create(nil, nil, trivial, nil)
	require.NoError(t, err)

	const donorChildren = 1000
	for i := 0; i < donorChildren; i++ {
		_, err := r2.Alloc(trivial, i)
		require.NoError(t, err)
	}

	require.NoError(t, r1.Merge(r2))
	require.NoError(t, r1.Validate())

	// r1's ring now holds its own iso, r2's former children, and r2's
	// former iso demoted to an ordinary member.
	count := 0
	it := region.NewIterator(r1, region.AllObjects)
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
		count++
	}
	require.Equal(t, 1+donorChildren+1, count)
}

func TestMergeRejectsSelfMerge(t *testing.T) {
	trivial := &region.Descriptor{Name: "trivial", Size: 8}
	r, _, err := region.Create(nil, nil, trivial, nil)
	require.NoError(t, err)

	require.Error(t, r.Merge(r))
}

func TestMergeDemotesDonorIsoOffItsTag(t *testing.T) {
	trivial := &region.Descriptor{Name: "trivial", Size: 8}

	r1, _, err := region.Create(nil, nil, trivial, nil)
	require.NoError(t, err)
	r2, donorIso, err := region.Create(nil, nil, trivial, nil)
	require.NoError(t, err)

	require.NoError(t, r1.Merge(r2))

	require.False(t, donorIso.IsISO())
	require.Nil(t, donorIso.OwnerRegion())
	require.NoError(t, r1.Validate())
}
