package kv

import (
	"github.com/cloudweiyang/xsorted/lib/tree"
)

type SafeStoreKeyFilterFunc[K comparable] func(key K) bool

func defaultAllKeysFilter[K comparable](key K) bool {
	return true
}

// OrderedStorer is the imperative surface over a persistent ordered
// tree. Mutations swap the wrapper's current root; snapshots handed
// out earlier keep observing the state they were taken from.
type OrderedStorer[K, V any] interface {
	Len() int64
	Get(key K) (V, bool)
	Put(key K, val V) (V, bool)
	Replace(key K, val V) (V, bool)
	Delete(key K)
	Remove(key K) (V, bool)
	RemoveMin() (K, V, error)
	Min() (K, V, bool)
	Max() (K, V, bool)
	Share() tree.RBTreeSnapshot[K, V]
	Entries() *tree.RBTreeIter[K, V]
	EntriesDesc() *tree.RBTreeIter[K, V]
}

type ThreadSafeStorer[K comparable, V any] interface {
	Purge() error
	AddOrUpdate(key K, obj V)
	Replace(items map[K]V)
	Delete(key K)
	Get(key K) (item V, exists bool)
	ListKeys(filters ...SafeStoreKeyFilterFunc[K]) []K
	ListValues(keys ...K) (items []V)
}

// ThreadSafeOrderedStorer adds lock-free snapshot reads on top of the
// plain thread-safe store surface.
type ThreadSafeOrderedStorer[K comparable, V any] interface {
	ThreadSafeStorer[K, V]
	Snapshot() tree.RBTreeSnapshot[K, V]
}
