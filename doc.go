/*
Package nodemap implements a jagged two-dimensional linked grid.

Grids

A Grid is a matrix-like container whose rows may have different lengths. It is
held together by two independent singly-linked dimensions over the same set of
nodes: every node links to its right-hand row neighbour and to the node
directly below it. The left edge of the grid is regular (every row starts on
the spine below the head node), the right edge may be ragged:

	1 → 2 → 3
	↓   ↓
	4 → 5
	↓
	6 → 7 → 8 → 9

The column alignment invariant requires that a node's down-link, if present,
refers to the node in the identical column of the next row, and that it is
absent exactly when the next row is too short to have such a column.

Structural edits at an arbitrary cell (Insert, Delete) repair both dimensions
locally: the edited row's right-chain, the down-links of the row above (which
target columns in the edited row) and the down-links of the edited row itself
(which target columns in the row below). No edit rescans the whole grid.

Nodes are kept in an arena and addressed by generational references (see
package arena). Clients never hold raw links; they receive Node handles, which
report whether they still denote a live node after the node has been detached
from the grid.

	Operation     |   Cost
	--------------+------------------------------
	Height        |   O(h)
	Get(r, c)     |   O(r + c)
	Push, Pop     |   O(h + w)
	Add, Remove   |   O(r + w)
	Insert        |   O(r + w)
	Delete        |   O(r + w)

with h the number of rows and w the length of the rows involved.

A Grid is not safe for concurrent use.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.

*/
package nodemap

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// tracer is T for generic code, where a type parameter named T hides it.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// GridError is an error type for the nodemap module
type GridError string

func (e GridError) Error() string {
	return string(e)
}

// ErrEmptyContainer is flagged whenever an operation requires at least one
// node and the grid has none.
const ErrEmptyContainer = GridError("nodemap: grid is empty")

// ErrOutOfBounds is flagged whenever a row or column does not denote an existing
// node, or a required alignment link is absent.
const ErrOutOfBounds = GridError("nodemap: index out of bounds")

// ErrInvariantViolation is flagged whenever an operation would leave the grid in an
// invalid structural state, e.g. an empty row in between other rows.
const ErrInvariantViolation = GridError("nodemap: operation would violate grid invariants")

// ErrInternalInconsistency signals a defect in link maintenance, i.e. a state the
// preconditions of an operation guarantee cannot occur. It is never caused by
// caller input.
const ErrInternalInconsistency = GridError("nodemap: internal inconsistency")

func mustHold(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
