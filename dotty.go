package nodemap

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/nodemap/arena"
)

type nodeids struct {
	idTable map[arena.Ref]int
	max     int
}

func newtable() nodeids {
	return nodeids{
		idTable: make(map[arena.Ref]int),
		max:     1,
	}
}

func (ids nodeids) find(r arena.Ref) int {
	return ids.idTable[r]
}

func (ids *nodeids) alloc(r arena.Ref) int {
	if id := ids.find(r); id > 0 {
		return id
	}
	ids.idTable[r] = ids.max
	ids.max++
	return ids.max - 1
}

// Grid2Dot outputs the internal structure of a grid in Graphviz DOT format
// (for debugging purposes). Right-links are drawn as solid edges, down-links
// as dashed edges; nodes of a row share a rank.
func Grid2Dot[T comparable](g *Grid[T], w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("strict digraph {\n")
	sb.WriteString("\tnode [fontname=Arial,fontsize=12,shape=box,style=filled,fillcolor=\"#a3d7e4\"];\n")
	ids := newtable()
	var edgelist strings.Builder
	err := g.each(func(r arena.Ref, c *cell[T], row, col int) {
		ID := ids.alloc(r)
		if col == 0 {
			if row > 0 {
				sb.WriteString("\t}\n")
			}
			sb.WriteString("\t{ rank=same;\n")
		}
		label := strings.ReplaceAll(fmt.Sprintf("%v", c.val), "\"", "\\\"")
		fmt.Fprintf(&sb, "\t\"%d\" [label=\"%s\\n(%d,%d)\"];\n", ID, label, row, col)
		if rr, ok := c.right.Get(); ok {
			fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\";\n", ID, ids.alloc(rr))
		}
		if d, ok := c.down.Get(); ok {
			fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\" [style=dashed];\n", ID, ids.alloc(d))
		}
	})
	if err != nil {
		tracer().Errorf("grid DOT: %s", err.Error())
		return err
	}
	if !g.IsEmpty() {
		sb.WriteString("\t}\n")
	}
	sb.WriteString(edgelist.String())
	sb.WriteString("}\n")
	_, err = io.WriteString(w, sb.String())
	return err
}

// each calls fn for every node in row-major order.
func (g *Grid[T]) each(fn func(r arena.Ref, c *cell[T], row, col int)) (err error) {
	defer recoverInconsistency(&err)
	spine := g.head
	for row := 0; ; row++ {
		start, ok := spine.Get()
		if !ok {
			return nil
		}
		for col, r := range g.rowRefs(start) {
			fn(r, g.node(r), row, col)
		}
		spine = g.node(start).down
	}
}
