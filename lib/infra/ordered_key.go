package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
// If future releases of Go add new predeclared unsigned integer types,
// this constraint will be modified to include them.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// Comparator is a three-way total order over K.
// Assume i is the probe key.
//  1. i == j (return 0)
//  2. i > j (return 1), turn to right part.
//  3. i < j (return -1), turn to left part.
// The comparator must be consistent. Supplying an inconsistent
// order is undefined behavior and is not validated.
type Comparator[K any] func(i, j K) int64

// OrderedKeyCompare is the natural ascending order for keys that
// satisfy the OrderedKey constraint.
func OrderedKeyCompare[K OrderedKey]() Comparator[K] {
	return func(i, j K) int64 {
		if i == j {
			return 0
		} else if i < j {
			return -1
		}
		return 1
	}
}

// ReverseOrderedKeyCompare flips the natural order.
func ReverseOrderedKeyCompare[K OrderedKey]() Comparator[K] {
	return func(i, j K) int64 {
		if i == j {
			return 0
		} else if i < j {
			return 1
		}
		return -1
	}
}

// Reverse flips an arbitrary comparator.
func Reverse[K any](cmp Comparator[K]) Comparator[K] {
	return func(i, j K) int64 {
		return cmp(j, i)
	}
}
