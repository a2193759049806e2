package kv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudweiyang/xsorted/lib/infra"
	"github.com/cloudweiyang/xsorted/lib/tree"
)

func collectKeys[K, V any](it *tree.RBTreeIter[K, V]) []K {
	keys := make([]K, 0, 8)
	for {
		key, _, ok := it.Next()
		if !ok {
			return keys
		}
		keys = append(keys, key)
	}
}

func TestSortedMapCRUD(t *testing.T) {
	m := NewSortedMap[uint64, string](infra.OrderedKeyCompare[uint64]())
	require.Equal(t, int64(0), m.Len())

	_, existed := m.Put(1, "one")
	require.False(t, existed)
	_, existed = m.Put(2, "two")
	require.False(t, existed)
	_, existed = m.Put(3, "three")
	require.False(t, existed)
	require.Equal(t, int64(3), m.Len())

	require.Equal(t, []uint64{1, 2, 3}, collectKeys(m.Entries()))
	require.Equal(t, []uint64{3, 2, 1}, collectKeys(m.EntriesDesc()))

	val, exists := m.Get(2)
	require.True(t, exists)
	require.Equal(t, "two", val)

	old, existed := m.Remove(2)
	require.True(t, existed)
	require.Equal(t, "two", old)
	require.Equal(t, int64(2), m.Len())
	require.Equal(t, []uint64{1, 3}, collectKeys(m.Entries()))

	_, exists = m.Get(2)
	require.False(t, exists)

	// Absent-key paths are no-ops.
	m.Delete(2)
	_, existed = m.Remove(2)
	require.False(t, existed)
	require.Equal(t, int64(2), m.Len())
}

func TestSortedMapPutIdempotence(t *testing.T) {
	m := NewSortedMap[int, string](infra.OrderedKeyCompare[int]())

	_, existed := m.Put(7, "seven")
	require.False(t, existed)

	old, existed := m.Put(7, "seven")
	require.True(t, existed)
	require.Equal(t, "seven", old)
	require.Equal(t, int64(1), m.Len())

	old, existed = m.Replace(7, "SEVEN")
	require.True(t, existed)
	require.Equal(t, "seven", old)

	val, _ := m.Get(7)
	require.Equal(t, "SEVEN", val)
}

func TestSortedMapRemoveMin(t *testing.T) {
	m := NewSortedMap[int, int](infra.OrderedKeyCompare[int]())

	_, _, err := m.RemoveMin()
	require.ErrorIs(t, err, ErrSortedMapEmpty)

	for _, key := range []int{52, 47, 3, 35, 24} {
		m.Put(key, key)
	}
	for _, want := range []int{3, 24, 35, 47, 52} {
		key, val, err := m.RemoveMin()
		require.NoError(t, err)
		require.Equal(t, want, key)
		require.Equal(t, want, val)
		require.NoError(t, tree.Validate(m.Share()))
	}
	require.Equal(t, int64(0), m.Len())

	_, _, err = m.RemoveMin()
	require.ErrorIs(t, err, ErrSortedMapEmpty)
}

func TestSortedMapMinMax(t *testing.T) {
	m := NewSortedMap[int, int](infra.OrderedKeyCompare[int]())

	_, _, ok := m.Min()
	require.False(t, ok)
	_, _, ok = m.Max()
	require.False(t, ok)

	for _, key := range []int{5, 1, 9, 3} {
		m.Put(key, key*100)
	}
	key, val, ok := m.Min()
	require.True(t, ok)
	require.Equal(t, 1, key)
	require.Equal(t, 100, val)

	key, val, ok = m.Max()
	require.True(t, ok)
	require.Equal(t, 9, key)
	require.Equal(t, 900, val)
}

func TestSortedMapDescOption(t *testing.T) {
	m := NewSortedMap(infra.OrderedKeyCompare[int](), WithSortedMapDesc[int, int]())
	for _, key := range []int{2, 1, 3} {
		m.Put(key, key)
	}
	require.Equal(t, []int{3, 2, 1}, collectKeys(m.Entries()))
	require.Equal(t, []int{1, 2, 3}, collectKeys(m.EntriesDesc()))
	require.NoError(t, tree.Validate(m.Share()))
}

func TestSortedMapShareIsolation(t *testing.T) {
	m := NewSortedMap[int, string](infra.OrderedKeyCompare[int]())
	m.Put(1, "one")

	s1 := m.Share()
	m.Put(2, "two")
	s2 := m.Share()

	require.Equal(t, []int{1}, collectKeys(s1.Iter(tree.IterAsc)))
	require.Equal(t, []int{1, 2}, collectKeys(s2.Iter(tree.IterAsc)))
	require.Equal(t, int64(1), s1.Len())
	require.Equal(t, int64(2), s2.Len())

	m.Remove(1)
	require.Equal(t, []int{1}, collectKeys(s1.Iter(tree.IterAsc)))
	require.Equal(t, []int{1, 2}, collectKeys(s2.Iter(tree.IterAsc)))
	require.Equal(t, []int{2}, collectKeys(m.Entries()))
}
