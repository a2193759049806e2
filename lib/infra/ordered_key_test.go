package infra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedKeyCompare(t *testing.T) {
	cmp := OrderedKeyCompare[int]()
	require.Equal(t, int64(0), cmp(7, 7))
	require.Equal(t, int64(-1), cmp(3, 7))
	require.Equal(t, int64(1), cmp(7, 3))

	scmp := OrderedKeyCompare[string]()
	require.Equal(t, int64(-1), scmp("abc", "abd"))
	require.Equal(t, int64(1), scmp("b", "aa"))
}

func TestReverseOrderedKeyCompare(t *testing.T) {
	cmp := ReverseOrderedKeyCompare[uint64]()
	require.Equal(t, int64(0), cmp(7, 7))
	require.Equal(t, int64(1), cmp(3, 7))
	require.Equal(t, int64(-1), cmp(7, 3))
}

func TestReverse(t *testing.T) {
	cmp := Reverse(OrderedKeyCompare[int]())
	require.Equal(t, int64(1), cmp(3, 7))
	require.Equal(t, int64(-1), cmp(7, 3))
	require.Equal(t, int64(0), cmp(7, 7))
}
