package tree

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=IterDirection
type IterDirection int8

const (
	IterDesc IterDirection = -1 + iota
	_
	IterAsc
)

// RBNode is a read-only view of one node of a tree snapshot.
// A nil interface stands for the leaf, which is considered black.
type RBNode[K, V any] interface {
	Key() K
	Val() V
	Color() RBColor
	Left() RBNode[K, V]
	Right() RBNode[K, V]
}

// OrderedTreeSnapshot is the read surface shared by every snapshot
// of the persistent tree family.
type OrderedTreeSnapshot[K, V any] interface {
	Len() int64
	IsEmpty() bool
	Get(key K) (V, bool)
	Min() (K, V, bool)
	Max() (K, V, bool)
	Root() RBNode[K, V]
	Foreach(action func(idx int64, color RBColor, key K, val V) bool)
	Iter(dir IterDirection) *RBTreeIter[K, V]
}
