/*
Package ntree implements an unbalanced n-ary search tree.

Each node of a Tree has n branches. Where a value goes is decided by a
Comparator supplied by the client: given the value of the node being viewed
and the value being added (or searched for), it returns the index of the branch
to descend into. A binary search tree is the special case n = 2 with a
comparator returning 0 for smaller and 1 for other values, see NewBinary.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package ntree

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'nodemap'
func tracer() tracing.Trace {
	return tracing.Select("nodemap")
}

// ErrInvalidArity is flagged when creating a tree with fewer than one branch
// per node.
var ErrInvalidArity = errors.New("ntree: number of branches must be at least 1")

// ErrBranchOutOfRange is flagged whenever a comparator returns a branch index
// outside of [0, n).
var ErrBranchOutOfRange = errors.New("ntree: comparator returned branch out of range")
