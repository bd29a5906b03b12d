package nodemap

import (
	"fmt"

	"github.com/npillmayer/nodemap/arena"
)

// Push appends a new row of a single node below the current bottom-left node.
// On an empty grid the new node becomes the head.
func (g *Grid[T]) Push(val T) Node[T] {
	ref := g.cells.Alloc(cell[T]{val: val})
	if b, ok := g.bottom(); ok {
		g.node(b).down = arena.Some(ref)
	} else {
		g.head = arena.Some(ref)
	}
	tracer().Debugf("nodemap: push %v", val)
	return g.handle(ref)
}

// Pop removes the entire last row and returns its values, left to right.
// Every down-link of the row above is cleared, regardless of the width of
// the removed row.
func (g *Grid[T]) Pop() (values []T, err error) {
	defer recoverInconsistency(&err)
	head, ok := g.head.Get()
	if !ok {
		return nil, fmt.Errorf("%w: cannot pop from an empty grid", ErrEmptyContainer)
	}
	if g.node(head).down.IsNone() { // single row
		g.head = arena.None()
		return g.freeRow(head), nil
	}
	above := head // second-to-last cell on the spine
	for {
		down, _ := g.node(above).down.Get()
		if g.node(down).down.IsNone() {
			break
		}
		above = down
	}
	last, ok := g.node(above).down.Get()
	if !ok {
		g.inconsistent("spine ends above row to pop")
	}
	for link := arena.Some(above); ; {
		r, ok := link.Get()
		if !ok {
			break
		}
		c := g.node(r)
		c.down = arena.None()
		link = c.right
	}
	tracer().Debugf("nodemap: pop bottom row")
	return g.freeRow(last), nil
}

// freeRow detaches every cell of the row starting at start and collects their
// values.
func (g *Grid[T]) freeRow(start arena.Ref) []T {
	var values []T
	for link := arena.Some(start); ; {
		r, ok := link.Get()
		if !ok {
			return values
		}
		c := g.node(r)
		values = append(values, c.val)
		link = c.right
		g.free(r)
	}
}

func (g *Grid[T]) free(r arena.Ref) {
	if err := g.cells.Free(r); err != nil {
		panic(inconsistency{fmt.Errorf("%w: %v", ErrInternalInconsistency, err)})
	}
}

// Add appends a node to the right end of row.
//
// For rows below the first one the new node has to be aligned with the row
// above: the row above is walked in lockstep with row, and if the row above
// extends one column further than row, the overhanging node's down-link is
// pointed at the new node. The new node's own down-link is set to whatever
// lies below the new column in the next row, if anything.
//
// On an empty grid, Add(0, val) creates the head node.
func (g *Grid[T]) Add(row int, val T) (n Node[T], err error) {
	defer recoverInconsistency(&err)
	if row == 0 && g.head.IsNone() {
		return g.Push(val), nil
	}
	var start arena.Ref
	var above arena.Link // cell of row-1 in the column of the walk
	if row == 0 {
		start, _ = g.head.Get()
	} else {
		upper, ok := g.rowStart(row - 1)
		if !ok {
			return Node[T]{}, fmt.Errorf("%w: row %d", ErrOutOfBounds, row)
		}
		if start, ok = g.node(upper).down.Get(); !ok {
			return Node[T]{}, fmt.Errorf("%w: row %d does not exist", ErrOutOfBounds, row)
		}
		above = arena.Some(upper)
	}
	ref := g.cells.Alloc(cell[T]{val: val})
	last := start
	for {
		next, ok := g.node(last).right.Get()
		if !ok {
			break
		}
		last = next
		if a, ok := above.Get(); ok {
			above = g.node(a).right
		}
	}
	if a, ok := above.Get(); ok {
		// row above overhangs: establish the new column's upward link
		if over, ok := g.node(a).right.Get(); ok {
			g.node(over).down = arena.Some(ref)
		}
	}
	lc := g.node(last)
	lc.right = arena.Some(ref)
	if below, ok := lc.down.Get(); ok {
		g.node(ref).down = g.node(below).right
	}
	tracer().Debugf("nodemap: add %v to row %d", val, row)
	return g.handle(ref), nil
}

// Remove detaches the rightmost node of row and returns its value.
// Rows may not become empty by Remove; use Pop to remove an entire row.
func (g *Grid[T]) Remove(row int) (val T, err error) {
	defer recoverInconsistency(&err)
	if g.head.IsNone() {
		return val, fmt.Errorf("%w: cannot remove from an empty grid", ErrEmptyContainer)
	}
	start, ok := g.rowStart(row)
	if !ok {
		return val, fmt.Errorf("%w: row %d", ErrOutOfBounds, row)
	}
	last, ok := g.node(start).right.Get()
	if !ok {
		return val, fmt.Errorf("%w: row %d would become empty", ErrInvariantViolation, row)
	}
	var above arena.Link // cell of row-1 in the column of prev
	if row > 0 {
		upper, _ := g.rowStart(row - 1)
		above = arena.Some(upper)
	}
	prev := start
	for {
		next, ok := g.node(last).right.Get()
		if !ok {
			break
		}
		prev, last = last, next
		if a, ok := above.Get(); ok {
			above = g.node(a).right
		}
	}
	if a, ok := above.Get(); ok {
		if over, ok := g.node(a).right.Get(); ok {
			oc := g.node(over)
			if !oc.down.Is(last) {
				g.inconsistent("node above column end of row %d not aligned", row)
			}
			oc.down = arena.None()
		}
	}
	g.node(prev).right = arena.None()
	val = g.node(last).val
	g.free(last)
	tracer().Debugf("nodemap: remove %v from row %d", val, row)
	return val, nil
}
