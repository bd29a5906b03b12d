package nodemap

import (
	"fmt"

	"github.com/npillmayer/nodemap/arena"
)

// Check validates the structural grid invariants:
//
//   - every node is reachable from the head exactly once, by following the
//     spine and then its row, and every live node of the grid is reachable;
//   - no row is empty and every row chain terminates;
//   - the column alignment invariant holds: the down-link of the node at
//     (r, c) refers to the node at (r+1, c) if row r+1 has such a column, and
//     is absent otherwise.
//
// Violations are reported as ErrInternalInconsistency.
func (g *Grid[T]) Check() error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInternalInconsistency)
	}
	if g.head.IsNone() {
		if g.cells.Len() != 0 {
			return fmt.Errorf("%w: empty grid holds %d nodes", ErrInternalInconsistency, g.cells.Len())
		}
		return nil
	}
	rows, err := g.checkReachable()
	if err != nil {
		return err
	}
	for r, row := range rows {
		var next []arena.Ref
		if r+1 < len(rows) {
			next = rows[r+1]
		}
		for c, ref := range row {
			cl, _ := g.cells.At(ref)
			if c < len(next) {
				if !cl.down.Is(next[c]) {
					return fmt.Errorf("%w: (%d,%d) down-link %s, expected %s",
						ErrInternalInconsistency, r, c, cl.down, next[c])
				}
			} else if !cl.down.IsNone() {
				return fmt.Errorf("%w: (%d,%d) has down-link %s below jagged edge",
					ErrInternalInconsistency, r, c, cl.down)
			}
		}
	}
	return nil
}

// checkReachable collects the rows of the grid by following links, guarding
// against shared nodes and cycles.
func (g *Grid[T]) checkReachable() ([][]arena.Ref, error) {
	seen := make(map[arena.Ref]struct{}, g.cells.Len())
	visit := func(r arena.Ref) error {
		if !g.cells.Live(r) {
			return fmt.Errorf("%w: link to detached node %s", ErrInternalInconsistency, r)
		}
		if _, dup := seen[r]; dup {
			return fmt.Errorf("%w: node %s reachable twice", ErrInternalInconsistency, r)
		}
		seen[r] = struct{}{}
		return nil
	}
	var rows [][]arena.Ref
	for spine := g.head; !spine.IsNone(); {
		start, _ := spine.Get()
		var row []arena.Ref
		for link := spine; !link.IsNone(); {
			r, _ := link.Get()
			if err := visit(r); err != nil {
				return nil, fmt.Errorf("row %d: %w", len(rows), err)
			}
			row = append(row, r)
			cl, _ := g.cells.At(r)
			link = cl.right
		}
		rows = append(rows, row)
		cl, _ := g.cells.At(start)
		spine = cl.down
	}
	if len(seen) != g.cells.Len() {
		return nil, fmt.Errorf("%w: %d nodes reachable, %d live",
			ErrInternalInconsistency, len(seen), g.cells.Len())
	}
	return rows, nil
}
