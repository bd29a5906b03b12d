package nodemap

import (
	"fmt"

	"github.com/npillmayer/nodemap/arena"
)

// cell is the linked node of a grid. Cells are owned by the grid collectively
// and never handed out to clients.
type cell[T comparable] struct {
	val   T
	right arena.Link // next cell in the same row
	down  arena.Link // cell in the same column of the next row
}

// Grid is a jagged two-dimensional linked grid.
//
// A grid created by
//
//	nodemap.Grid[int]{}
//
// is a valid object and behaves like an empty grid.
type Grid[T comparable] struct {
	head  arena.Link // top-left cell
	cells arena.Arena[cell[T]]
}

// New creates an empty grid.
func New[T comparable]() *Grid[T] {
	return &Grid[T]{}
}

// WithHead creates a grid pre-seeded with a single top-left node.
func WithHead[T comparable](val T) *Grid[T] {
	g := &Grid[T]{}
	g.Push(val)
	return g
}

// FromRows creates a grid with one row per argument. Empty rows are rejected,
// as rows of a grid always have at least one node.
func FromRows[T comparable](rows ...[]T) (*Grid[T], error) {
	g := &Grid[T]{}
	for i, row := range rows {
		if len(row) == 0 {
			return nil, fmt.Errorf("%w: row %d is empty", ErrInvariantViolation, i)
		}
		g.Push(row[0])
		for _, v := range row[1:] {
			if _, err := g.Add(i, v); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// --- Node handles ----------------------------------------------------------

// Node is a read-only handle for a node of a grid.
//
// Handles stay valid while the node is linked into the grid. After the node has
// been detached (by Pop, Remove or Delete) the handle reports Live() == false,
// even if the grid has re-used the node's storage since.
type Node[T comparable] struct {
	grid *Grid[T]
	ref  arena.Ref
}

// Live reports whether n still denotes a node of its grid.
func (n Node[T]) Live() bool {
	return n.grid != nil && n.grid.cells.Live(n.ref)
}

// Value returns the value stored at n. Calling Value for a handle which is not
// Live is a programming error and will panic.
func (n Node[T]) Value() T {
	mustHold(n.grid != nil, "Value() called for void node handle")
	c, err := n.grid.cells.At(n.ref)
	mustHold(err == nil, "Value() called for detached node")
	return c.val
}

// Right returns the node's right-hand neighbour within its row, if any.
func (n Node[T]) Right() (Node[T], bool) {
	return n.follow(func(c *cell[T]) arena.Link { return c.right })
}

// Down returns the node in the same column of the next row, if any.
func (n Node[T]) Down() (Node[T], bool) {
	return n.follow(func(c *cell[T]) arena.Link { return c.down })
}

func (n Node[T]) follow(link func(*cell[T]) arena.Link) (Node[T], bool) {
	if !n.Live() {
		return Node[T]{}, false
	}
	c, _ := n.grid.cells.At(n.ref)
	if r, ok := link(c).Get(); ok {
		return Node[T]{grid: n.grid, ref: r}, true
	}
	return Node[T]{}, false
}

func (n Node[T]) String() string {
	if !n.Live() {
		return "Node/detached"
	}
	return fmt.Sprintf("Node/%v", n.Value())
}

func (g *Grid[T]) handle(r arena.Ref) Node[T] {
	return Node[T]{grid: g, ref: r}
}

// --- Internal access -------------------------------------------------------

// inconsistency is raised (as a panic) from deep within link repair and
// converted to an ErrInternalInconsistency error at the API boundary.
type inconsistency struct {
	err error
}

// node returns the cell addressed by r. The pointer is valid until the next
// allocation of a cell.
func (g *Grid[T]) node(r arena.Ref) *cell[T] {
	c, err := g.cells.At(r)
	if err != nil {
		panic(inconsistency{fmt.Errorf("%w: %v", ErrInternalInconsistency, err)})
	}
	return c
}

func (g *Grid[T]) inconsistent(format string, args ...interface{}) {
	panic(inconsistency{fmt.Errorf("%w: "+format, append([]interface{}{ErrInternalInconsistency}, args...)...)})
}

func recoverInconsistency(err *error) {
	if r := recover(); r != nil {
		ic, ok := r.(inconsistency)
		if !ok {
			panic(r)
		}
		tracer().Errorf("%v", ic.err)
		*err = ic.err
	}
}

// rowStart walks the spine and returns the first cell of row.
func (g *Grid[T]) rowStart(row int) (arena.Ref, bool) {
	if row < 0 {
		return arena.Ref{}, false
	}
	link := g.head
	for i := 0; ; i++ {
		r, ok := link.Get()
		if !ok {
			return arena.Ref{}, false
		}
		if i == row {
			return r, true
		}
		link = g.node(r).down
	}
}

// rowRefs materializes the row starting at start.
func (g *Grid[T]) rowRefs(start arena.Ref) []arena.Ref {
	refs := make([]arena.Ref, 0, 8)
	for link := arena.Some(start); ; {
		r, ok := link.Get()
		if !ok {
			return refs
		}
		refs = append(refs, r)
		link = g.node(r).right
	}
}

// bottom returns the first cell of the last row.
func (g *Grid[T]) bottom() (arena.Ref, bool) {
	r, ok := g.head.Get()
	if !ok {
		return arena.Ref{}, false
	}
	for {
		next, ok := g.node(r).down.Get()
		if !ok {
			return r, true
		}
		r = next
	}
}

// --- Query surface ---------------------------------------------------------

// IsEmpty reports whether the grid has no nodes.
func (g *Grid[T]) IsEmpty() bool {
	return g.head.IsNone()
}

// Height returns the number of rows, i.e. the length of the spine.
func (g *Grid[T]) Height() int {
	h := 0
	for link := g.head; ; h++ {
		r, ok := link.Get()
		if !ok {
			return h
		}
		link = g.node(r).down
	}
}

// Size returns the total number of nodes.
func (g *Grid[T]) Size() int {
	size := 0
	for _, row := range g.Rows() {
		for range row {
			size++
		}
	}
	return size
}

// RowLen returns the number of nodes in row.
func (g *Grid[T]) RowLen(row int) (int, error) {
	start, ok := g.rowStart(row)
	if !ok {
		return 0, fmt.Errorf("%w: row %d", ErrOutOfBounds, row)
	}
	return len(g.rowRefs(start)), nil
}

// GetFirst returns the leftmost node of row.
func (g *Grid[T]) GetFirst(row int) (Node[T], error) {
	start, ok := g.rowStart(row)
	if !ok {
		return Node[T]{}, fmt.Errorf("%w: row %d", ErrOutOfBounds, row)
	}
	return g.handle(start), nil
}

// GetLast returns the rightmost node of row.
func (g *Grid[T]) GetLast(row int) (Node[T], error) {
	start, ok := g.rowStart(row)
	if !ok {
		return Node[T]{}, fmt.Errorf("%w: row %d", ErrOutOfBounds, row)
	}
	r := start
	for {
		next, ok := g.node(r).right.Get()
		if !ok {
			return g.handle(r), nil
		}
		r = next
	}
}

// GetBottom returns the leftmost node of the last row, if the grid is not empty.
func (g *Grid[T]) GetBottom() (Node[T], bool) {
	if r, ok := g.bottom(); ok {
		return g.handle(r), true
	}
	return Node[T]{}, false
}

// Get returns the node at (row, col).
func (g *Grid[T]) Get(row, col int) (Node[T], error) {
	start, ok := g.rowStart(row)
	if !ok {
		return Node[T]{}, fmt.Errorf("%w: row %d", ErrOutOfBounds, row)
	}
	if col < 0 {
		return Node[T]{}, fmt.Errorf("%w: column %d", ErrOutOfBounds, col)
	}
	r := start
	for c := 0; c < col; c++ {
		next, ok := g.node(r).right.Get()
		if !ok {
			return Node[T]{}, fmt.Errorf("%w: column %d on row %d", ErrOutOfBounds, col, row)
		}
		r = next
	}
	return g.handle(r), nil
}

// Find searches the grid row by row for a node holding val and returns its
// position.
func (g *Grid[T]) Find(val T) (row, col int, found bool) {
	for r, values := range g.Rows() {
		c := 0
		for v := range values {
			if v == val {
				return r, c, true
			}
			c++
		}
	}
	return -1, -1, false
}
