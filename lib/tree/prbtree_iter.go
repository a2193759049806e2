package tree

// Lazy in-order iteration over a snapshot, driven by an explicit work
// list instead of recursion. Each item is either a subtree still to be
// expanded or an entry ready to be yielded; a node expands into
// (left, entry, right) ascending or (right, entry, left) descending.
// The work list never holds more than one entry per level of the tree,
// so its depth stays O(log n).

type rbIterItem[K, V any] struct {
	node  *prbNode[K, V]
	yield bool
}

// RBTreeIter is a single-pass, forward-only cursor pinned to the
// snapshot it was created from. Mutations published after creation are
// never observed; restart by asking the same snapshot for a new iter.
type RBTreeIter[K, V any] struct {
	work []rbIterItem[K, V]
	dir  IterDirection
}

// Iter starts a lazy traversal of the snapshot, ascending for IterAsc
// and descending for IterDesc. O(1) to construct.
func (snap RBTreeSnapshot[K, V]) Iter(dir IterDirection) *RBTreeIter[K, V] {
	it := &RBTreeIter[K, V]{dir: dir}
	if snap.root != nil {
		it.work = append(make([]rbIterItem[K, V], 0, 8), rbIterItem[K, V]{node: snap.root})
	}
	return it
}

// Next yields the next entry in direction order, or false once the
// work list drains. Exhaustion is terminal.
func (it *RBTreeIter[K, V]) Next() (key K, val V, ok bool) {
	for size := len(it.work); size > 0; size = len(it.work) {
		top := it.work[size-1]
		it.work = it.work[:size-1]

		if top.yield {
			return top.node.key, top.node.val, true
		}

		// The work list is a LIFO, push the far side first.
		node := top.node
		if it.dir == IterAsc {
			if node.right != nil {
				it.work = append(it.work, rbIterItem[K, V]{node: node.right})
			}
			it.work = append(it.work, rbIterItem[K, V]{node: node, yield: true})
			if node.left != nil {
				it.work = append(it.work, rbIterItem[K, V]{node: node.left})
			}
		} else {
			if node.left != nil {
				it.work = append(it.work, rbIterItem[K, V]{node: node.left})
			}
			it.work = append(it.work, rbIterItem[K, V]{node: node, yield: true})
			if node.right != nil {
				it.work = append(it.work, rbIterItem[K, V]{node: node.right})
			}
		}
	}
	return key, val, false
}
