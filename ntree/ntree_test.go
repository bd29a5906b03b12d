package ntree

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The harness sequence: binary tree, add * 4, print, invert, print.
func TestBinaryTreeInvert(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodemap")
	defer teardown()
	//
	tree := NewBinary[int]()
	for _, v := range []int{0, 1, -1, -2} {
		require.NoError(t, tree.Add(v))
	}
	assert.Equal(t, 4, tree.Size())
	assert.Equal(t, 3, tree.Height())
	assert.Equal(t, "0\n--> -1\n--> --> -2\n--> --> none\n--> 1\n", tree.String())
	tree.Invert()
	assert.Equal(t, "0\n--> 1\n--> -1\n--> --> none\n--> --> -2\n", tree.String())
	tree.Invert()
	found, err := tree.Contains(-2)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestContains(t *testing.T) {
	tree := NewBinary[string]()
	for _, v := range []string{"m", "c", "x", "a", "e"} {
		require.NoError(t, tree.Add(v))
	}
	for _, v := range []string{"m", "c", "x", "a", "e"} {
		found, err := tree.Contains(v)
		require.NoError(t, err)
		assert.True(t, found, v)
	}
	found, _ := tree.Contains("z")
	assert.False(t, found)
}

func TestWalkPreOrder(t *testing.T) {
	tree := NewBinary[int]()
	for _, v := range []int{5, 3, 8, 1, 4, 9} {
		_ = tree.Add(v)
	}
	var order []int
	var depths []int
	tree.Walk(func(v, depth int) bool {
		order = append(order, v)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []int{5, 3, 1, 4, 8, 9}, order)
	assert.Equal(t, []int{0, 1, 2, 2, 1, 2}, depths)
	n := 0
	tree.Walk(func(int, int) bool { n++; return n < 2 })
	assert.Equal(t, 2, n, "walk should stop early")
}

func TestTernaryTree(t *testing.T) {
	// branch by remainder modulo 3
	tree, err := New[int](3, func(_, adding int) int { return adding % 3 })
	require.NoError(t, err)
	for v := 0; v < 9; v++ {
		require.NoError(t, tree.Add(v))
	}
	assert.Equal(t, 9, tree.Size())
	assert.Equal(t, 4, tree.Height())
	found, _ := tree.Contains(7)
	assert.True(t, found)
	tree.Invert()
	var order []int
	tree.Walk(func(v, _ int) bool { order = append(order, v); return true })
	assert.Equal(t, []int{0, 2, 5, 8, 1, 4, 7, 3, 6}, order)
}

func TestComparatorOutOfRange(t *testing.T) {
	tree, err := New[int](2, func(_, _ int) int { return 2 })
	require.NoError(t, err)
	require.NoError(t, tree.Add(1)) // head needs no comparison
	if err := tree.Add(2); !errors.Is(err, ErrBranchOutOfRange) {
		t.Errorf("expected ErrBranchOutOfRange, got %v", err)
	}
	if _, err := tree.Contains(2); !errors.Is(err, ErrBranchOutOfRange) {
		t.Errorf("expected ErrBranchOutOfRange, got %v", err)
	}
}

func TestInvalidArity(t *testing.T) {
	if _, err := New[int](0, func(_, _ int) int { return 0 }); !errors.Is(err, ErrInvalidArity) {
		t.Errorf("expected ErrInvalidArity, got %v", err)
	}
	if _, err := New[int](2, nil); err == nil {
		t.Errorf("expected missing comparator to be rejected")
	}
}

func TestEmptyTree(t *testing.T) {
	tree := NewBinary[int]()
	if tree.Size() != 0 || tree.Height() != 0 || tree.String() != "" {
		t.Errorf("expected empty tree")
	}
	found, err := tree.Contains(1)
	if found || err != nil {
		t.Errorf("expected empty tree to contain nothing")
	}
}
