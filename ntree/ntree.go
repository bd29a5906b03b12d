package ntree

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/nodemap/arena"
)

// Comparator selects the branch of the node holding viewing which leads
// towards adding. It has to return a value in [0, n).
type Comparator[T any] func(viewing, adding T) int

type node[T comparable] struct {
	val      T
	branches []arena.Link
}

// Tree is an n-ary search tree. Trees are not balanced.
//
// A Tree is not safe for concurrent use.
type Tree[T comparable] struct {
	n       int
	compare Comparator[T]
	head    arena.Link
	nodes   arena.Arena[node[T]]
}

// New creates an empty tree with n branches per node, ordered by compare.
func New[T comparable](n int, compare Comparator[T]) (*Tree[T], error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n = %d", ErrInvalidArity, n)
	}
	if compare == nil {
		return nil, errors.New("ntree: comparator missing")
	}
	return &Tree[T]{n: n, compare: compare}, nil
}

// NewBinary creates an empty binary search tree. Values smaller than a node's
// value go to branch 0, all others to branch 1.
func NewBinary[T cmp.Ordered]() *Tree[T] {
	t, _ := New[T](2, func(viewing, adding T) int {
		if adding < viewing {
			return 0
		}
		return 1
	})
	return t
}

// Arity returns the number of branches per node.
func (t *Tree[T]) Arity() int {
	return t.n
}

func (t *Tree[T]) node(r arena.Ref) *node[T] {
	nd, err := t.nodes.At(r)
	if err != nil {
		panic(fmt.Sprintf("ntree: broken link: %v", err))
	}
	return nd
}

func (t *Tree[T]) branch(viewing, val T) (int, error) {
	b := t.compare(viewing, val)
	if b < 0 || b >= t.n {
		return b, fmt.Errorf("%w: %d not in [0,%d)", ErrBranchOutOfRange, b, t.n)
	}
	return b, nil
}

// Add inserts val as a new leaf. Duplicates are stored again, in whichever
// branch the comparator selects for them.
func (t *Tree[T]) Add(val T) error {
	r, ok := t.head.Get()
	if !ok {
		t.head = arena.Some(t.alloc(val))
		return nil
	}
	for {
		nd := t.node(r)
		b, err := t.branch(nd.val, val)
		if err != nil {
			return err
		}
		next, ok := nd.branches[b].Get()
		if !ok {
			leaf := t.alloc(val) // may move nd
			t.node(r).branches[b] = arena.Some(leaf)
			tracer().Debugf("ntree: added %v at branch %d", val, b)
			return nil
		}
		r = next
	}
}

func (t *Tree[T]) alloc(val T) arena.Ref {
	return t.nodes.Alloc(node[T]{val: val, branches: make([]arena.Link, t.n)})
}

// Contains searches for val along the path the comparator selects.
func (t *Tree[T]) Contains(val T) (bool, error) {
	for link := t.head; !link.IsNone(); {
		r, _ := link.Get()
		nd := t.node(r)
		if nd.val == val {
			return true, nil
		}
		b, err := t.branch(nd.val, val)
		if err != nil {
			return false, err
		}
		link = nd.branches[b]
	}
	return false, nil
}

// Size returns the number of nodes.
func (t *Tree[T]) Size() int {
	return t.nodes.Len()
}

// Height returns the number of nodes on the longest path from the head to a
// leaf.
func (t *Tree[T]) Height() int {
	return t.height(t.head)
}

func (t *Tree[T]) height(link arena.Link) int {
	r, ok := link.Get()
	if !ok {
		return 0
	}
	h := 0
	for _, b := range t.node(r).branches {
		h = max(h, t.height(b))
	}
	return h + 1
}

// Invert mirrors the tree: the branches of every node are reversed. The
// comparator is not adapted, searching an inverted tree will therefore fail
// unless it is inverted a second time.
func (t *Tree[T]) Invert() {
	t.invert(t.head)
}

func (t *Tree[T]) invert(link arena.Link) {
	r, ok := link.Get()
	if !ok {
		return
	}
	branches := t.node(r).branches
	for i, j := 0, len(branches)-1; i < j; i, j = i+1, j-1 {
		branches[i], branches[j] = branches[j], branches[i]
	}
	for _, b := range branches {
		t.invert(b)
	}
}

// Walk calls fn for every node in pre-order, i.e. a node before its
// branches, branches from 0 to n-1. Walk stops early if fn returns false.
func (t *Tree[T]) Walk(fn func(val T, depth int) bool) {
	t.walk(t.head, 0, fn)
}

func (t *Tree[T]) walk(link arena.Link, depth int, fn func(T, int) bool) bool {
	r, ok := link.Get()
	if !ok {
		return true
	}
	nd := t.node(r)
	if !fn(nd.val, depth) {
		return false
	}
	for _, b := range nd.branches {
		if !t.walk(b, depth+1, fn) {
			return false
		}
	}
	return true
}

// String renders the tree with one node per line, indented by depth. Absent
// branches of inner nodes are printed as "none", so that branch positions
// stay visible:
//
//	0
//	--> -1
//	--> --> -2
//	--> --> none
//	--> 1
func (t *Tree[T]) String() string {
	if t.head.IsNone() {
		return ""
	}
	var sb strings.Builder
	t.print(&sb, t.head, 0)
	return sb.String()
}

func (t *Tree[T]) print(sb *strings.Builder, link arena.Link, depth int) {
	sb.WriteString(strings.Repeat("--> ", depth))
	r, ok := link.Get()
	if !ok {
		sb.WriteString("none\n")
		return
	}
	nd := t.node(r)
	fmt.Fprintf(sb, "%v\n", nd.val)
	leaf := true
	for _, b := range nd.branches {
		leaf = leaf && b.IsNone()
	}
	if leaf {
		return
	}
	for _, b := range nd.branches {
		t.print(sb, b, depth+1)
	}
}
