package nodemap

import (
	"fmt"
	"iter"
	"strings"

	"github.com/npillmayer/nodemap/arena"
)

// Rows returns a sequence of the grid's rows, each of them a sequence of node
// values from left to right. The sequence may be iterated more than once; it
// must not be iterated while the grid is being modified.
func (g *Grid[T]) Rows() iter.Seq2[int, iter.Seq[T]] {
	return func(yield func(int, iter.Seq[T]) bool) {
		link := g.head
		for row := 0; ; row++ {
			r, ok := link.Get()
			if !ok {
				return
			}
			if !yield(row, g.rowValues(r)) {
				return
			}
			link = g.node(r).down
		}
	}
}

func (g *Grid[T]) rowValues(start arena.Ref) iter.Seq[T] {
	return func(yield func(T) bool) {
		for link := arena.Some(start); ; {
			r, ok := link.Get()
			if !ok {
				return
			}
			c := g.node(r)
			if !yield(c.val) {
				return
			}
			link = c.right
		}
	}
}

// Neighbourhood describes a node together with the values of the nodes its
// links refer to.
type Neighbourhood[T comparable] struct {
	Value    T
	Right    T
	HasRight bool
	Down     T
	HasDown  bool
}

// DeepRows returns a sequence of the grid's rows, each of them listing its
// nodes together with their right and down neighbours.
func (g *Grid[T]) DeepRows() iter.Seq2[int, []Neighbourhood[T]] {
	return func(yield func(int, []Neighbourhood[T]) bool) {
		link := g.head
		for row := 0; ; row++ {
			start, ok := link.Get()
			if !ok {
				return
			}
			refs := g.rowRefs(start)
			nbs := make([]Neighbourhood[T], len(refs))
			for i, r := range refs {
				c := g.node(r)
				nbs[i].Value = c.val
				if rr, ok := c.right.Get(); ok {
					nbs[i].Right, nbs[i].HasRight = g.node(rr).val, true
				}
				if d, ok := c.down.Get(); ok {
					nbs[i].Down, nbs[i].HasDown = g.node(d).val, true
				}
			}
			if !yield(row, nbs) {
				return
			}
			link = g.node(start).down
		}
	}
}

// String returns the grid's values, one line per row.
func (g *Grid[T]) String() string {
	var sb strings.Builder
	for _, row := range g.Rows() {
		first := true
		for v := range row {
			if !first {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%v", v)
			first = false
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// NoneMarker is printed by DeepPrint in place of an absent link.
const NoneMarker = "none"

// DeepPrint returns every node of the grid together with the values of its
// right and down neighbours (for debugging purposes):
//
//	row 0:
//	  1 → 2 ↓ 4
//	  2 → none ↓ none
func (g *Grid[T]) DeepPrint() string {
	var sb strings.Builder
	for row, nbs := range g.DeepRows() {
		fmt.Fprintf(&sb, "row %d:\n", row)
		for _, nb := range nbs {
			fmt.Fprintf(&sb, "  %v → %s ↓ %s\n", nb.Value,
				neighbour(nb.Right, nb.HasRight), neighbour(nb.Down, nb.HasDown))
		}
	}
	return sb.String()
}

func neighbour[T any](v T, ok bool) string {
	if !ok {
		return NoneMarker
	}
	return fmt.Sprintf("%v", v)
}

// Values returns the grid's values as a slice of rows.
func (g *Grid[T]) Values() [][]T {
	var rows [][]T
	for _, row := range g.Rows() {
		var values []T
		for v := range row {
			values = append(values, v)
		}
		rows = append(rows, values)
	}
	return rows
}
