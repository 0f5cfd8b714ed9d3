package region_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/objring/traceregion/region"
)

func TestSwapRootWithTrivialityFlip(t *testing.T) {
	trivial := &region.Descriptor{Name: "trivial", Size: 8}
	nonTrivial := &region.Descriptor{
		Name:       "nontrivial",
		Size:       16,
		Destructor: func(obj *region.Object) {},
	}

	r, a, err := region.Create(nil, nil, trivial, nil)
	require.NoError(t, err)

	b, err := r.Alloc(nonTrivial, nil)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	require.NoError(t, r.SwapRoot(a, b))

	require.Same(t, b, r.CurrentIso())
	require.True(t, b.IsISO())
	require.Equal(t, "UNMARKED", a.Tag())
	require.NoError(t, r.Validate())
}

func TestSwapRootRoundTripRestoresIso(t *testing.T) {
	trivial := &region.Descriptor{Name: "trivial", Size: 8}

	r, a, err := region.Create(nil, nil, trivial, nil)
	require.NoError(t, err)

	b, err := r.Alloc(trivial, nil)
	require.NoError(t, err)

	require.NoError(t, r.SwapRoot(a, b))
	require.Same(t, b, r.CurrentIso())

	require.NoError(t, r.SwapRoot(b, a))
	require.Same(t, a, r.CurrentIso())
	require.NoError(t, r.Validate())
}

func TestSwapRootRejectsPrevAsNext(t *testing.T) {
	trivial := &region.Descriptor{Name: "trivial", Size: 8}

	r, a, err := region.Create(nil, nil, trivial, nil)
	require.NoError(t, err)

	require.Error(t, r.SwapRoot(a, a))
}
