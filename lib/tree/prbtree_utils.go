package tree

import (
	"errors"

	"go.uber.org/multierr"
)

// rbtree rule validation utilities, meant for tests and debug builds.

var (
	ErrRedViolation   = errors.New("[prbtree] red violation")
	ErrBlackViolation = errors.New("[prbtree] black violation")
	ErrKeyOrder       = errors.New("[prbtree] inorder keys out of order")
)

// RedViolationValidate walks the snapshot and reports any red node
// carrying a red child (p3).
func RedViolationValidate[K, V any](snap RBTreeSnapshot[K, V]) error {
	var walk func(node *prbNode[K, V]) error
	walk = func(node *prbNode[K, V]) error {
		if node == nil {
			return nil
		}
		if node.isRed() && (node.left.isRed() || node.right.isRed()) {
			return ErrRedViolation
		}
		if err := walk(node.left); err != nil {
			return err
		}
		return walk(node.right)
	}
	return walk(snap.root)
}

// BlackViolationValidate reports unequal black depth across
// root-to-leaf paths (p4).
func BlackViolationValidate[K, V any](snap RBTreeSnapshot[K, V]) error {
	var depth func(node *prbNode[K, V]) (int, error)
	depth = func(node *prbNode[K, V]) (int, error) {
		if node == nil {
			return 1, nil
		}
		ld, err := depth(node.left)
		if err != nil {
			return 0, err
		}
		rd, err := depth(node.right)
		if err != nil {
			return 0, err
		}
		if ld != rd {
			return 0, ErrBlackViolation
		}
		if node.color == Black {
			ld++
		}
		return ld, nil
	}
	_, err := depth(snap.root)
	return err
}

// KeyOrderValidate checks that the inorder key sequence strictly
// increases under the snapshot's comparator.
func KeyOrderValidate[K, V any](snap RBTreeSnapshot[K, V]) error {
	var prev *K
	err := error(nil)
	snap.Foreach(func(idx int64, color RBColor, key K, val V) bool {
		if prev != nil && snap.cmp(*prev, key) >= 0 {
			err = ErrKeyOrder
			return false
		}
		k := key
		prev = &k
		return true
	})
	return err
}

// Validate aggregates all three property checks.
func Validate[K, V any](snap RBTreeSnapshot[K, V]) error {
	return multierr.Combine(
		RedViolationValidate(snap),
		BlackViolationValidate(snap),
		KeyOrderValidate(snap),
	)
}

// RootBlack reports p5 for the snapshot, trivially true when empty.
func RootBlack[K, V any](snap RBTreeSnapshot[K, V]) bool {
	return snap.root == nil || snap.root.color == Black
}
