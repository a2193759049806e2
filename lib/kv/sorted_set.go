package kv

import (
	"github.com/cloudweiyang/xsorted/lib/infra"
	"github.com/cloudweiyang/xsorted/lib/tree"
)

// SortedSet keeps distinct keys in comparator order, backed by the
// same persistent tree as SortedMap. Not safe for concurrent use.
type SortedSet[K any] struct {
	m *SortedMap[K, struct{}]
}

func NewSortedSet[K any](cmp infra.Comparator[K]) *SortedSet[K] {
	return &SortedSet[K]{m: NewSortedMap[K, struct{}](cmp)}
}

func (s *SortedSet[K]) Len() int64 {
	return s.m.Len()
}

// Add reports whether key was newly inserted.
func (s *SortedSet[K]) Add(key K) bool {
	_, existed := s.m.Put(key, struct{}{})
	return !existed
}

func (s *SortedSet[K]) Contains(key K) bool {
	_, exists := s.m.Get(key)
	return exists
}

// Remove reports whether key was present.
func (s *SortedSet[K]) Remove(key K) bool {
	_, existed := s.m.Remove(key)
	return existed
}

func (s *SortedSet[K]) Min() (K, bool) {
	key, _, ok := s.m.Min()
	return key, ok
}

func (s *SortedSet[K]) Max() (K, bool) {
	key, _, ok := s.m.Max()
	return key, ok
}

// Share hands out the current membership as an immutable snapshot.
func (s *SortedSet[K]) Share() tree.RBTreeSnapshot[K, struct{}] {
	return s.m.Share()
}

// Keys iterates the members in ascending order, lazily.
func (s *SortedSet[K]) Keys(dir tree.IterDirection) *tree.RBTreeIter[K, struct{}] {
	return s.m.Share().Iter(dir)
}
