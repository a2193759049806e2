package kv

import (
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/cloudweiyang/xsorted/lib/infra"
	"github.com/cloudweiyang/xsorted/lib/tree"
)

// threadSafeSortedMap guards a SortedMap with an RWMutex. The lock only
// covers swapping the current root; a reader that grabs a snapshot via
// Snapshot() traverses it entirely outside the lock, which is safe
// because published tree nodes are immutable.
type threadSafeSortedMap[K comparable, V any] struct {
	lock   sync.RWMutex
	m      *SortedMap[K, V]
	cmp    infra.Comparator[K]
	logger *zap.Logger
}

func (t *threadSafeSortedMap[K, V]) AddOrUpdate(key K, obj V) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.m.Put(key, obj)
}

func (t *threadSafeSortedMap[K, V]) Replace(items map[K]V) {
	next := NewSortedMap[K, V](t.cmp)
	for key, item := range items {
		next.Put(key, item)
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	t.m = next
}

func (t *threadSafeSortedMap[K, V]) Delete(key K) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.m.Delete(key)
}

func (t *threadSafeSortedMap[K, V]) Get(key K) (item V, exists bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.m.Get(key)
}

// Snapshot pins the current state; traversing it needs no lock.
func (t *threadSafeSortedMap[K, V]) Snapshot() tree.RBTreeSnapshot[K, V] {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.m.Share()
}

func (t *threadSafeSortedMap[K, V]) ListKeys(filters ...SafeStoreKeyFilterFunc[K]) []K {
	realFilters := lo.Filter(filters, func(filter SafeStoreKeyFilterFunc[K], _ int) bool {
		return filter != nil
	})
	if len(realFilters) == 0 {
		realFilters = append(realFilters, defaultAllKeysFilter[K])
	}

	snap := t.Snapshot()
	keys := make([]K, 0, snap.Len())
	snap.Foreach(func(idx int64, color tree.RBColor, key K, val V) bool {
		for _, filter := range realFilters {
			if filter(key) {
				keys = append(keys, key)
				break
			}
		}
		return true
	})
	return keys
}

func (t *threadSafeSortedMap[K, V]) ListValues(keys ...K) (items []V) {
	snap := t.Snapshot()
	values := make([]V, 0, snap.Len())
	snap.Foreach(func(idx int64, color tree.RBColor, key K, val V) bool {
		if len(keys) == 0 || lo.Contains(keys, key) {
			values = append(values, val)
		}
		return true
	})
	return values
}

func (t *threadSafeSortedMap[K, V]) Purge() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.logger != nil {
		t.logger.Info("sorted map purged", zap.Int64("dropped", t.m.Len()))
	}
	t.m = NewSortedMap[K, V](t.cmp)
	return nil
}

type ThreadSafeSortedMapOpt[K comparable, V any] func(*threadSafeSortedMap[K, V])

// WithThreadSafeSortedMapLogger attaches an audit logger for the
// operations worth a trace, Purge for now.
func WithThreadSafeSortedMapLogger[K comparable, V any](logger *zap.Logger) ThreadSafeSortedMapOpt[K, V] {
	return func(t *threadSafeSortedMap[K, V]) {
		t.logger = logger
	}
}

func NewThreadSafeSortedMap[K comparable, V any](cmp infra.Comparator[K], opts ...ThreadSafeSortedMapOpt[K, V]) ThreadSafeOrderedStorer[K, V] {
	t := &threadSafeSortedMap[K, V]{
		m:   NewSortedMap[K, V](cmp),
		cmp: cmp,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}
