package tree

import (
	"github.com/cloudweiyang/xsorted/lib/infra"
)

// References:
// https://en.wikipedia.org/wiki/Persistent_data_structure
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// rbtree properties:
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root returned by a public operation is black.
//
// Unlike the pointer-rewiring rbtree, every mutation here copies the
// search path and leaves all previously published nodes untouched.
// Any root obtained before a mutation keeps observing the old contents,
// which is what makes Share() an O(1) snapshot.

// A nil *prbNode is the leaf and is considered black.
type prbNode[K, V any] struct {
	left  *prbNode[K, V]
	right *prbNode[K, V]
	key   K
	val   V
	color RBColor
}

func (node *prbNode[K, V]) Key() K { return node.key }

func (node *prbNode[K, V]) Val() V { return node.val }

func (node *prbNode[K, V]) Color() RBColor { return node.color }

func (node *prbNode[K, V]) Left() RBNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *prbNode[K, V]) Right() RBNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *prbNode[K, V]) isRed() bool {
	return node != nil && node.color == Red
}

// isBlackNode reports a materialized black node, excluding the nil leaf.
func (node *prbNode[K, V]) isBlackNode() bool {
	return node != nil && node.color == Black
}

func (node *prbNode[K, V]) minimum() *prbNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *prbNode[K, V]) maximum() *prbNode[K, V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// blacken returns node repainted black, copying only when needed.
// Safe at the root: extra blackness there can not break p4.
func blacken[K, V any](node *prbNode[K, V]) *prbNode[K, V] {
	if node == nil || node.color == Black {
		return node
	}
	return &prbNode[K, V]{left: node.left, right: node.right, key: node.key, val: node.val, color: Black}
}

func paintBlack[K, V any](node *prbNode[K, V]) *prbNode[K, V] {
	if node == nil {
		// impossible run to here
		panic( /* debug assertion */ "[prbtree] paint a nil leaf black")
	}
	if node.color == Black {
		return node
	}
	return &prbNode[K, V]{left: node.left, right: node.right, key: node.key, val: node.val, color: Black}
}

// paintRed gives one unit of blackness back to the path above.
// Only a materialized black node may be repainted.
func paintRed[K, V any](node *prbNode[K, V]) *prbNode[K, V] {
	if !node.isBlackNode() {
		// impossible run to here
		panic( /* debug assertion */ "[prbtree] repaint a non-black subtree red")
	}
	return &prbNode[K, V]{left: node.left, right: node.right, key: node.key, val: node.val, color: Red}
}

/*
rebalance settles a freshly rebuilt node whose children may carry one
red-red chain. First matching case wins; the table order is load-bearing.

<X> is a RED node.
[X] is a BLACK node (or NIL).

b1: Both children red. Recolor only and push the excess red one level up.

	     ?                <y>
	    / \               / \
	  <x> <z>   ====>   [x] [z]

b2 (LL), b3 (LR), b4 (RR), b5 (RL): a red child carries a red grandchild.
Rotate the three-in-a-row chain into a red node over two black children,
again handing the violation to the caller.

	       ?                     ?                    <y>
	      / \                   / \                   / \
	    <y>  d               <x>   d               [x]   [z]
	    / \       (LL)       / \        (LR)       / \   / \
	  <x>  c     =====>     a  <y>     =====>     a   b c   d
	  / \                      / \
	 a   b                    b   c

Anything else settles as a plain black node.
*/
func rebalance[K, V any](left *prbNode[K, V], key K, val V, right *prbNode[K, V]) *prbNode[K, V] {
	switch {
	case /* b1 */ left.isRed() && right.isRed():
		return &prbNode[K, V]{
			left:  paintBlack(left),
			right: paintBlack(right),
			key:   key, val: val,
			color: Red,
		}
	case /* b2 LL */ left.isRed() && left.left.isRed():
		return &prbNode[K, V]{
			left:  paintBlack(left.left),
			right: &prbNode[K, V]{left: left.right, right: right, key: key, val: val, color: Black},
			key:   left.key, val: left.val,
			color: Red,
		}
	case /* b3 LR */ left.isRed() && left.right.isRed():
		lr := left.right
		return &prbNode[K, V]{
			left:  &prbNode[K, V]{left: left.left, right: lr.left, key: left.key, val: left.val, color: Black},
			right: &prbNode[K, V]{left: lr.right, right: right, key: key, val: val, color: Black},
			key:   lr.key, val: lr.val,
			color: Red,
		}
	case /* b4 RR */ right.isRed() && right.right.isRed():
		return &prbNode[K, V]{
			left:  &prbNode[K, V]{left: left, right: right.left, key: key, val: val, color: Black},
			right: paintBlack(right.right),
			key:   right.key, val: right.val,
			color: Red,
		}
	case /* b5 RL */ right.isRed() && right.left.isRed():
		rl := right.left
		return &prbNode[K, V]{
			left:  &prbNode[K, V]{left: left, right: rl.left, key: key, val: val, color: Black},
			right: &prbNode[K, V]{left: rl.right, right: right.right, key: right.key, val: right.val, color: Black},
			key:   rl.key, val: rl.val,
			color: Red,
		}
	default:
		return &prbNode[K, V]{left: left, right: right, key: key, val: val, color: Black}
	}
}

// i1: A leaf grows a fresh red node.
// i2: Equal key replaces the entry in place, colors and children kept.
// i3: A black node rebuilds through rebalance, absorbing any red-red
//   chain the recursion produced below it.
// i4: A red node rebuilds as-is; its possible red-red contact with the
//   new child is fixed one level up by the black grandparent (or by the
//   final root blackening).
func insertNode[K, V any](node *prbNode[K, V], key K, val V, cmp infra.Comparator[K]) (_ *prbNode[K, V], old V, existed bool) {
	if /* i1 */ node == nil {
		return &prbNode[K, V]{key: key, val: val, color: Red}, old, false
	}

	res := cmp(key, node.key)
	if /* i2 */ res == 0 {
		return &prbNode[K, V]{
			left: node.left, right: node.right,
			key: key, val: val,
			color: node.color,
		}, node.val, true
	}

	if res < 0 {
		nl, old, existed := insertNode(node.left, key, val, cmp)
		if /* i3 */ node.color == Black {
			return rebalance(nl, node.key, node.val, node.right), old, existed
		}
		/* i4 */
		return &prbNode[K, V]{left: nl, right: node.right, key: node.key, val: node.val, color: Red}, old, existed
	}

	nr, old, existed := insertNode(node.right, key, val, cmp)
	if /* i3 */ node.color == Black {
		return rebalance(node.left, node.key, node.val, nr), old, existed
	}
	/* i4 */
	return &prbNode[K, V]{left: node.left, right: nr, key: node.key, val: node.val, color: Red}, old, existed
}

/*
Deletion bookkeeping: removeNode on a subtree whose root is black may
come back one unit of blackness short, flagged by a red result root.
balanceLeft repairs such a deficit in the left child by borrowing from
the right sibling; balanceRight is the mirror.

bl1: The rebuilt left child is red. Repainting it black settles the
  deficit on the spot.

bl2: The sibling is a black node. Pushing its blackness up (sibling goes
  red, rebalance cleans the possible red-red) moves the deficit to this
  node, which reports it upward the same way.

bl3: The sibling is red, so it has two materialized black children.
  Rotate the sibling up; its near child becomes the new sibling and the
  deficit resolves inside a subtree of known shape.

	     ?                        <z>
	    / \                       / \
	  [x] <z>      (bl3)       [x?] [c]
	       / \    ======>      / \
	     [b] [c]            [x]  [b']
*/
func balanceLeft[K, V any](left *prbNode[K, V], key K, val V, right *prbNode[K, V]) *prbNode[K, V] {
	switch {
	case /* bl1 */ left.isRed():
		return &prbNode[K, V]{left: paintBlack(left), right: right, key: key, val: val, color: Red}
	case /* bl2 */ right.isBlackNode():
		return rebalance(left, key, val, paintRed(right))
	case /* bl3 */ right.isRed() && right.left.isBlackNode():
		rl := right.left
		return &prbNode[K, V]{
			left:  &prbNode[K, V]{left: left, right: rl.left, key: key, val: val, color: Black},
			right: rebalance(rl.right, right.key, right.val, paintRed(right.right)),
			key:   rl.key, val: rl.val,
			color: Red,
		}
	default:
		// impossible run to here
		panic( /* debug assertion */ "[prbtree] remove rebalance violate (bl)")
	}
}

func balanceRight[K, V any](left *prbNode[K, V], key K, val V, right *prbNode[K, V]) *prbNode[K, V] {
	switch {
	case /* br1 */ right.isRed():
		return &prbNode[K, V]{left: left, right: paintBlack(right), key: key, val: val, color: Red}
	case /* br2 */ left.isBlackNode():
		return rebalance(paintRed(left), key, val, right)
	case /* br3 */ left.isRed() && left.right.isBlackNode():
		lr := left.right
		return &prbNode[K, V]{
			left:  rebalance(paintRed(left.left), left.key, left.val, lr.left),
			right: &prbNode[K, V]{left: lr.right, right: right, key: key, val: val, color: Black},
			key:   lr.key, val: lr.val,
			color: Red,
		}
	default:
		// impossible run to here
		panic( /* debug assertion */ "[prbtree] remove rebalance violate (br)")
	}
}

/*
mergeSubtrees splices the two children of a removed node back into one
subtree, preserving p4. The two inputs sat at the same black depth, so
only their meeting colors need care.

m1: Either side is a leaf, take the other.
m2: Both roots red. Their inner edges fuse first; if the fused middle
  comes back red it is split between the two reds, otherwise it hangs
  under the right one.
m3: Both roots black, same dance, except a non-red middle leaves a
  blackness deficit that balanceLeft repairs.
m4: Mixed colors. The red root is transparent for p4, so the black one
  fuses into the red one's near side.
*/
func mergeSubtrees[K, V any](left, right *prbNode[K, V]) *prbNode[K, V] {
	if /* m1 */ left == nil {
		return right
	}
	if /* m1 */ right == nil {
		return left
	}

	switch {
	case /* m2 */ left.isRed() && right.isRed():
		mid := mergeSubtrees(left.right, right.left)
		if mid.isRed() {
			return &prbNode[K, V]{
				left:  &prbNode[K, V]{left: left.left, right: mid.left, key: left.key, val: left.val, color: Red},
				right: &prbNode[K, V]{left: mid.right, right: right.right, key: right.key, val: right.val, color: Red},
				key:   mid.key, val: mid.val,
				color: Red,
			}
		}
		return &prbNode[K, V]{
			left:  left.left,
			right: &prbNode[K, V]{left: mid, right: right.right, key: right.key, val: right.val, color: Red},
			key:   left.key, val: left.val,
			color: Red,
		}
	case /* m3 */ left.isBlackNode() && right.isBlackNode():
		mid := mergeSubtrees(left.right, right.left)
		if mid.isRed() {
			return &prbNode[K, V]{
				left:  &prbNode[K, V]{left: left.left, right: mid.left, key: left.key, val: left.val, color: Black},
				right: &prbNode[K, V]{left: mid.right, right: right.right, key: right.key, val: right.val, color: Black},
				key:   mid.key, val: mid.val,
				color: Red,
			}
		}
		return balanceLeft(left.left, left.key, left.val,
			&prbNode[K, V]{left: mid, right: right.right, key: right.key, val: right.val, color: Black})
	case /* m4 */ right.isRed():
		return &prbNode[K, V]{
			left:  mergeSubtrees(left, right.left),
			right: right.right,
			key:   right.key, val: right.val,
			color: Red,
		}
	default: /* m4, left red */
		return &prbNode[K, V]{
			left:  left.left,
			right: mergeSubtrees(left.right, right),
			key:   left.key, val: left.val,
			color: Red,
		}
	}
}

// d1: Leaf, nothing to remove; the caller keeps its old root.
// d2: Equal key. The node is physically unlinked and its former
//   children merge back together. No tombstone is left behind.
// d3: Descend left. A black left child may report a blackness deficit,
//   repaired by balanceLeft; a red or nil one can not.
// d4: Mirror of d3 on the right.
func removeNode[K, V any](node *prbNode[K, V], key K, cmp infra.Comparator[K]) (_ *prbNode[K, V], old V, existed bool) {
	if /* d1 */ node == nil {
		return nil, old, false
	}

	res := cmp(key, node.key)
	if /* d2 */ res == 0 {
		return mergeSubtrees(node.left, node.right), node.val, true
	}

	if /* d3 */ res < 0 {
		nl, old, existed := removeNode(node.left, key, cmp)
		if !existed {
			return node, old, false
		}
		if node.left.isBlackNode() {
			return balanceLeft(nl, node.key, node.val, node.right), old, true
		}
		return &prbNode[K, V]{left: nl, right: node.right, key: node.key, val: node.val, color: Red}, old, true
	}

	/* d4 */
	nr, old, existed := removeNode(node.right, key, cmp)
	if !existed {
		return node, old, false
	}
	if node.right.isBlackNode() {
		return balanceRight(node.left, node.key, node.val, nr), old, true
	}
	return &prbNode[K, V]{left: node.left, right: nr, key: node.key, val: node.val, color: Red}, old, true
}

var (
	_ RBNode[uint8, uint8]              = (*prbNode[uint8, uint8])(nil)
	_ OrderedTreeSnapshot[uint8, uint8] = RBTreeSnapshot[uint8, uint8]{}
)

// RBTreeSnapshot is an immutable ordered map value. All methods are
// free of side effects; Put and Remove return a new snapshot sharing
// every untouched subtree with the receiver. Snapshots are safe to
// share across goroutines without synchronization once published.
type RBTreeSnapshot[K, V any] struct {
	root *prbNode[K, V]
	cmp  infra.Comparator[K]
}

// NewRBTreeSnapshot builds an empty snapshot ordered by cmp.
// The comparator must be a consistent total order over K.
func NewRBTreeSnapshot[K, V any](cmp infra.Comparator[K]) RBTreeSnapshot[K, V] {
	if cmp == nil {
		panic("[prbtree] nil key comparator")
	}
	return RBTreeSnapshot[K, V]{cmp: cmp}
}

func (snap RBTreeSnapshot[K, V]) IsEmpty() bool {
	return snap.root == nil
}

// Len counts live entries by full traversal, O(n). The snapshot keeps
// no cached count; wrappers that own a single lineage may.
func (snap RBTreeSnapshot[K, V]) Len() int64 {
	var count func(node *prbNode[K, V]) int64
	count = func(node *prbNode[K, V]) int64 {
		if node == nil {
			return 0
		}
		return 1 + count(node.left) + count(node.right)
	}
	return count(snap.root)
}

func (snap RBTreeSnapshot[K, V]) Root() RBNode[K, V] {
	if snap.root == nil {
		return nil
	}
	return snap.root
}

func (snap RBTreeSnapshot[K, V]) Get(key K) (val V, exists bool) {
	for aux := snap.root; aux != nil; {
		res := snap.cmp(key, aux.key)
		if res == 0 {
			return aux.val, true
		} else if res < 0 {
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	return val, false
}

func (snap RBTreeSnapshot[K, V]) Min() (key K, val V, exists bool) {
	aux := snap.root.minimum()
	if aux == nil {
		return key, val, false
	}
	return aux.key, aux.val, true
}

func (snap RBTreeSnapshot[K, V]) Max() (key K, val V, exists bool) {
	aux := snap.root.maximum()
	if aux == nil {
		return key, val, false
	}
	return aux.key, aux.val, true
}

// Put returns a snapshot holding the insert-or-replace result, plus
// the prior value when the key was already present. The receiver is
// unchanged.
func (snap RBTreeSnapshot[K, V]) Put(key K, val V) (_ RBTreeSnapshot[K, V], old V, existed bool) {
	nr, old, existed := insertNode(snap.root, key, val, snap.cmp)
	return RBTreeSnapshot[K, V]{root: blacken(nr), cmp: snap.cmp}, old, existed
}

// Remove returns a snapshot without key, plus the removed value. When
// the key is absent the receiver itself comes back untouched.
func (snap RBTreeSnapshot[K, V]) Remove(key K) (_ RBTreeSnapshot[K, V], old V, existed bool) {
	nr, old, existed := removeNode(snap.root, key, snap.cmp)
	if !existed {
		return snap, old, false
	}
	return RBTreeSnapshot[K, V]{root: blacken(nr), cmp: snap.cmp}, old, true
}

// Inorder traversal to implement the DFS.
func (snap RBTreeSnapshot[K, V]) Foreach(action func(idx int64, color RBColor, key K, val V) bool) {
	aux := snap.root
	if aux == nil {
		return
	}

	stack := make([]*prbNode[K, V], 0, 8)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key, aux.val) {
			return
		}
		idx++
		stack = stack[:size-1]
		if aux.right != nil {
			for aux = aux.right; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
}
