package kv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudweiyang/xsorted/lib/infra"
	"github.com/cloudweiyang/xsorted/lib/tree"
)

func TestSortedSet(t *testing.T) {
	s := NewSortedSet[string](infra.OrderedKeyCompare[string]())
	require.Equal(t, int64(0), s.Len())
	require.False(t, s.Contains("b"))

	require.True(t, s.Add("b"))
	require.True(t, s.Add("a"))
	require.True(t, s.Add("c"))
	require.False(t, s.Add("b"))
	require.Equal(t, int64(3), s.Len())
	require.True(t, s.Contains("b"))

	require.Equal(t, []string{"a", "b", "c"}, collectKeys(s.Keys(tree.IterAsc)))
	require.Equal(t, []string{"c", "b", "a"}, collectKeys(s.Keys(tree.IterDesc)))

	minKey, ok := s.Min()
	require.True(t, ok)
	require.Equal(t, "a", minKey)
	maxKey, ok := s.Max()
	require.True(t, ok)
	require.Equal(t, "c", maxKey)

	require.True(t, s.Remove("b"))
	require.False(t, s.Remove("b"))
	require.False(t, s.Contains("b"))
	require.Equal(t, []string{"a", "c"}, collectKeys(s.Keys(tree.IterAsc)))

	require.NoError(t, tree.Validate(s.Share()))
}

func TestSortedSetShareIsolation(t *testing.T) {
	s := NewSortedSet[int](infra.OrderedKeyCompare[int]())
	s.Add(1)

	snap := s.Share()
	s.Add(2)

	require.Equal(t, []int{1}, collectKeys(snap.Iter(tree.IterAsc)))
	require.Equal(t, []int{1, 2}, collectKeys(s.Keys(tree.IterAsc)))
}
