package nodemap

import (
	"fmt"

	"github.com/npillmayer/nodemap/arena"
)

// Insert places a new node at column col of row. Every node previously at a
// column ≥ col in row shifts one column to the right. Insert returns the new
// node.
//
// col may equal the length of row (appending). For rows other than the first
// one, col must not exceed the length of the row above.
//
// On an empty grid, Insert(0, 0, val) creates the head node.
func (g *Grid[T]) Insert(row, col int, val T) (n Node[T], err error) {
	defer recoverInconsistency(&err)
	if g.head.IsNone() {
		if row == 0 && col == 0 {
			return g.Push(val), nil
		}
		return Node[T]{}, fmt.Errorf("%w: (%d,%d) in empty grid", ErrOutOfBounds, row, col)
	}
	start, ok := g.rowStart(row)
	if !ok {
		return Node[T]{}, fmt.Errorf("%w: row %d", ErrOutOfBounds, row)
	}
	cols := g.rowRefs(start)
	if col < 0 || col > len(cols) {
		return Node[T]{}, fmt.Errorf("%w: column %d on row %d", ErrOutOfBounds, col, row)
	}
	var upper []arena.Ref
	if row > 0 {
		up, _ := g.rowStart(row - 1)
		upper = g.rowRefs(up)
		if col > len(upper) {
			return Node[T]{}, fmt.Errorf("%w: column %d has no counterpart in row %d",
				ErrOutOfBounds, col, row-1)
		}
	}
	ref := g.cells.Alloc(cell[T]{val: val})
	//
	// splice into the row
	if col == 0 {
		g.node(ref).right = arena.Some(cols[0])
		if row == 0 {
			g.head = arena.Some(ref)
		} // otherwise the spine link is repaired with the row above
	} else {
		left := g.node(cols[col-1])
		g.node(ref).right = left.right
		left.right = arena.Some(ref)
	}
	if row > 0 {
		g.shiftAboveRight(upper, cols, col, ref)
	}
	g.shiftDownRight(cols, col, ref)
	tracer().Debugf("nodemap: insert %v at (%d,%d)", val, row, col)
	return g.handle(ref), nil
}

// shiftAboveRight repairs the down-links of the row above after a node has
// been inserted at column col of the row below it.
//
// Each node of the row above at a column > col now targets the node one column
// further left in the old row, which is its left neighbour's old down-link.
// New links are taken from cols, the snapshot of the edited row before the
// splice, so they may be applied left to right. The node directly above the
// insertion point receives the new node.
func (g *Grid[T]) shiftAboveRight(upper, cols []arena.Ref, col int, ref arena.Ref) {
	if col >= len(upper) {
		return // row above too short to reach the new column
	}
	for j := col; j < len(upper) && j < len(cols); j++ {
		if !g.node(upper[j]).down.Is(cols[j]) {
			g.inconsistent("row above not aligned at column %d", j)
		}
	}
	for j := col + 1; j < len(upper); j++ {
		uc := g.node(upper[j])
		if j-1 < len(cols) {
			uc.down = arena.Some(cols[j-1])
		} else {
			uc.down = arena.None()
		}
	}
	g.node(upper[col]).down = arena.Some(ref)
}

// shiftDownRight repairs the down-links of the edited row. The row below did
// not shift, but every node right of the new one did, so each of them now
// targets the right neighbour of its old down-link. cols is the row before
// the splice, with cols[col:] being the nodes right of the new node.
func (g *Grid[T]) shiftDownRight(cols []arena.Ref, col int, ref arena.Ref) {
	// the new node takes over the down-link of the node it displaced
	var below arena.Link
	if col < len(cols) {
		below = g.node(cols[col]).down
	} else if d, ok := g.node(cols[col-1]).down.Get(); ok {
		below = g.node(d).right
	}
	g.node(ref).down = below
	for _, r := range cols[col:] {
		c := g.node(r)
		if d, ok := c.down.Get(); ok {
			c.down = g.node(d).right
		}
	}
}

// Delete removes the node at (row, col) and returns its value. Every node at a
// column > col in row shifts one column to the left.
//
// Rows may not become empty by Delete as long as other rows exist; use Pop to
// remove an entire row. Deleting the only node of a single-row grid leaves the
// grid empty.
func (g *Grid[T]) Delete(row, col int) (val T, err error) {
	defer recoverInconsistency(&err)
	if g.head.IsNone() {
		return val, fmt.Errorf("%w: cannot delete from an empty grid", ErrEmptyContainer)
	}
	start, ok := g.rowStart(row)
	if !ok {
		return val, fmt.Errorf("%w: row %d", ErrOutOfBounds, row)
	}
	cols := g.rowRefs(start)
	if col < 0 || col >= len(cols) {
		return val, fmt.Errorf("%w: column %d on row %d", ErrOutOfBounds, col, row)
	}
	if len(cols) == 1 {
		if g.Height() > 1 {
			return val, fmt.Errorf("%w: row %d would become empty", ErrInvariantViolation, row)
		}
		g.head = arena.None()
		val = g.node(cols[0]).val
		g.free(cols[0])
		tracer().Debugf("nodemap: delete %v, grid is empty", val)
		return val, nil
	}
	victim := cols[col]
	vc := g.node(victim)
	val, right, down := vc.val, vc.right, vc.down
	//
	// splice out of the row
	if col == 0 {
		if row == 0 {
			g.head = right
		} // otherwise the spine link is repaired with the row above
	} else {
		g.node(cols[col-1]).right = right
	}
	if row > 0 {
		up, _ := g.rowStart(row - 1)
		g.shiftAboveLeft(g.rowRefs(up), cols, col)
	}
	g.shiftDownLeft(cols, col, down)
	g.free(victim)
	tracer().Debugf("nodemap: delete %v at (%d,%d)", val, row, col)
	return val, nil
}

// shiftAboveLeft repairs the down-links of the row above after the node at
// column col of the row below has been deleted. Each node of the row above at a
// column ≥ col now targets what used to be one column further right, i.e. its
// right neighbour's old down-link. Targets are read from cols, the snapshot of
// the edited row, as the last node of the row above has no right neighbour.
func (g *Grid[T]) shiftAboveLeft(upper, cols []arena.Ref, col int) {
	for j := col; j < len(upper); j++ {
		uc := g.node(upper[j])
		if j+1 < len(cols) {
			uc.down = arena.Some(cols[j+1])
		} else {
			uc.down = arena.None()
		}
	}
}

// shiftDownLeft repairs the down-links of the edited row after deletion of the
// node at col. Every node right of it moved one column left, so it targets the
// previous node's old down-link; the first of them inherits the deleted node's
// own down-link.
func (g *Grid[T]) shiftDownLeft(cols []arena.Ref, col int, down arena.Link) {
	carry := down
	for _, r := range cols[col+1:] {
		c := g.node(r)
		c.down, carry = carry, c.down
	}
}
