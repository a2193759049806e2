package kv

import (
	"errors"

	"github.com/cloudweiyang/xsorted/lib/infra"
	"github.com/cloudweiyang/xsorted/lib/tree"
)

var (
	ErrSortedMapEmpty       = errors.New("[sorted-map] empty element to remove")
	ErrSortedMapKeyNotFound = errors.New("[sorted-map] key not found")
)

// SortedMap is a mutable ordered map. The heavy lifting lives in the
// persistent tree; the map itself is only a holder of the current root
// plus an O(1) live count for its own lineage. Not safe for concurrent
// use, see NewThreadSafeSortedMap for that.
type SortedMap[K, V any] struct {
	snap  tree.RBTreeSnapshot[K, V]
	count int64
}

type SortedMapOpt[K, V any] func(*sortedMapCfg[K])

type sortedMapCfg[K any] struct {
	cmp infra.Comparator[K]
}

// WithSortedMapDesc reverses the map's iteration order.
func WithSortedMapDesc[K, V any]() SortedMapOpt[K, V] {
	return func(cfg *sortedMapCfg[K]) {
		cfg.cmp = infra.Reverse(cfg.cmp)
	}
}

// NewSortedMap builds an empty map ordered by cmp. The comparator must
// be a consistent total order; this is not validated.
func NewSortedMap[K, V any](cmp infra.Comparator[K], opts ...SortedMapOpt[K, V]) *SortedMap[K, V] {
	cfg := &sortedMapCfg[K]{cmp: cmp}
	for _, o := range opts {
		o(cfg)
	}
	return &SortedMap[K, V]{snap: tree.NewRBTreeSnapshot[K, V](cfg.cmp)}
}

func (m *SortedMap[K, V]) Len() int64 {
	return m.count
}

func (m *SortedMap[K, V]) Get(key K) (V, bool) {
	return m.snap.Get(key)
}

// Put inserts or replaces, returning the prior value when the key was
// already present.
func (m *SortedMap[K, V]) Put(key K, val V) (V, bool) {
	next, old, existed := m.snap.Put(key, val)
	m.snap = next
	if !existed {
		m.count++
	}
	return old, existed
}

// Replace is Put under the name some call sites prefer.
func (m *SortedMap[K, V]) Replace(key K, val V) (V, bool) {
	return m.Put(key, val)
}

// Delete drops key, a no-op when absent.
func (m *SortedMap[K, V]) Delete(key K) {
	_, _ = m.Remove(key)
}

// Remove drops key and returns the removed value.
func (m *SortedMap[K, V]) Remove(key K) (V, bool) {
	next, old, existed := m.snap.Remove(key)
	if existed {
		m.snap = next
		m.count--
	}
	return old, existed
}

// RemoveMin drops and returns the smallest entry.
func (m *SortedMap[K, V]) RemoveMin() (key K, val V, err error) {
	if m.count <= 0 {
		return key, val, infra.WrapErrorStack(ErrSortedMapEmpty)
	}
	key, _, ok := m.snap.Min()
	if !ok {
		// impossible run to here
		return key, val, infra.WrapErrorStackWithMessage(ErrSortedMapKeyNotFound, "count and tree disagree")
	}
	val, _ = m.Remove(key)
	return key, val, nil
}

func (m *SortedMap[K, V]) Min() (K, V, bool) {
	return m.snap.Min()
}

func (m *SortedMap[K, V]) Max() (K, V, bool) {
	return m.snap.Max()
}

// Share hands out the current tree as an immutable snapshot, O(1).
// Later mutations of the map are invisible through it.
func (m *SortedMap[K, V]) Share() tree.RBTreeSnapshot[K, V] {
	return m.snap
}

// Entries iterates the live entries in ascending key order, lazily.
func (m *SortedMap[K, V]) Entries() *tree.RBTreeIter[K, V] {
	return m.snap.Iter(tree.IterAsc)
}

// EntriesDesc is Entries in descending key order.
func (m *SortedMap[K, V]) EntriesDesc() *tree.RBTreeIter[K, V] {
	return m.snap.Iter(tree.IterDesc)
}

var _ OrderedStorer[int, int] = (*SortedMap[int, int])(nil)
