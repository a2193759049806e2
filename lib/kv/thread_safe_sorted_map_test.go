package kv

import (
	"sort"
	"sync"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cloudweiyang/xsorted/lib/infra"
	"github.com/cloudweiyang/xsorted/lib/tree"
)

func TestThreadSafeSortedMapCRUD(t *testing.T) {
	m := NewThreadSafeSortedMap[uint64, string](infra.OrderedKeyCompare[uint64]())

	m.AddOrUpdate(2, "two")
	m.AddOrUpdate(1, "one")
	m.AddOrUpdate(3, "three")
	m.AddOrUpdate(2, "TWO")

	val, exists := m.Get(2)
	require.True(t, exists)
	require.Equal(t, "TWO", val)

	require.Equal(t, []uint64{1, 2, 3}, m.ListKeys())
	require.Equal(t, []string{"one", "TWO", "three"}, m.ListValues())
	require.Equal(t, []string{"one", "three"}, m.ListValues(1, 3))

	odd := func(key uint64) bool { return key&0x1 == 1 }
	require.Equal(t, []uint64{1, 3}, m.ListKeys(odd, nil))

	m.Delete(2)
	_, exists = m.Get(2)
	require.False(t, exists)
	require.Equal(t, []uint64{1, 3}, m.ListKeys())
}

func TestThreadSafeSortedMapReplaceAndPurge(t *testing.T) {
	logger := zaptest.NewLogger(t)
	m := NewThreadSafeSortedMap(
		infra.OrderedKeyCompare[int](),
		WithThreadSafeSortedMapLogger[int, int](logger),
	)

	m.AddOrUpdate(9, 9)
	m.Replace(map[int]int{5: 50, 1: 10, 7: 70})
	require.Equal(t, []int{1, 5, 7}, m.ListKeys())
	_, exists := m.Get(9)
	require.False(t, exists)

	require.NoError(t, m.Purge())
	require.Empty(t, m.ListKeys())
	_, exists = m.Get(5)
	require.False(t, exists)
}

func TestThreadSafeSortedMapConcurrentSnapshotReaders(t *testing.T) {
	m := NewThreadSafeSortedMap[uint64, uint64](infra.OrderedKeyCompare[uint64]())

	pool, err := ants.NewPool(8)
	require.NoError(t, err)
	defer pool.Release()

	total := uint64(2000)
	var wg sync.WaitGroup

	wg.Add(1)
	writerErr := pool.Submit(func() {
		defer wg.Done()
		for i := uint64(0); i < total; i++ {
			m.AddOrUpdate(i, i)
			if i&0x3 == 0 {
				m.Delete(i >> 1)
			}
		}
	})
	require.NoError(t, writerErr)

	// Readers pin a snapshot, then traverse it entirely outside the
	// lock; whatever interleaving happens, each snapshot must be a
	// well-formed tree with strictly ascending keys.
	for r := 0; r < 8; r++ {
		wg.Add(1)
		readerErr := pool.Submit(func() {
			defer wg.Done()
			for round := 0; round < 50; round++ {
				snap := m.Snapshot()
				require.NoError(t, tree.Validate(snap))
				keys := collectKeys(snap.Iter(tree.IterAsc))
				require.True(t, sort.SliceIsSorted(keys, func(i, j int) bool {
					return keys[i] < keys[j]
				}))
			}
		})
		require.NoError(t, readerErr)
	}

	wg.Wait()
	require.NoError(t, tree.Validate(m.Snapshot()))
}
