package region_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/objring/traceregion/region"
)

func TestIteratorAllObjectsVisitsPrimaryThenSecondary(t *testing.T) {
	trivial := &region.Descriptor{Name: "trivial", Size: 8}
	nonTrivial := &region.Descriptor{
		Name:       "nontrivial",
		Size:       16,
		Destructor: func(obj *region.Object) {},
	}

	r, iso, err := region.Create(nil, nil, trivial, nil)
	require.NoError(t, err)

	secondaryMember, err := r.Alloc(nonTrivial, nil)
	require.NoError(t, err)

	var visited []*region.Object
	it := region.NewIterator(r, region.AllObjects)
	for {
		obj, ok := it.Next()
		if !ok {
			break
		}
		visited = append(visited, obj)
	}

	require.Len(t, visited, 2)
	require.Same(t, iso, visited[0])
	require.Contains(t, visited, iso)
	require.Contains(t, visited, secondaryMember)
}

func TestIteratorTrivialAndNonTrivialOnlyPartitionMembership(t *testing.T) {
	trivial := &region.Descriptor{Name: "trivial", Size: 8}
	nonTrivial := &region.Descriptor{
		Name:       "nontrivial",
		Size:       16,
		Destructor: func(obj *region.Object) {},
	}

	r, iso, err := region.Create(nil, nil, trivial, nil)
	require.NoError(t, err)
	secondaryMember, err := r.Alloc(nonTrivial, nil)
	require.NoError(t, err)

	trivialOnly := collect(region.NewIterator(r, region.TrivialOnly))
	require.Equal(t, []*region.Object{iso}, trivialOnly)

	nonTrivialOnly := collect(region.NewIterator(r, region.NonTrivialOnly))
	require.Equal(t, []*region.Object{secondaryMember}, nonTrivialOnly)
}

func collect(it *region.Iterator) []*region.Object {
	var out []*region.Object
	for {
		obj, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, obj)
	}
}
