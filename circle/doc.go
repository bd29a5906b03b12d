/*
Package circle implements a circular doubly-linked list with named savepoints.

Every element of a Circle is linked to its clockwise and to its counterclockwise
neighbour. One element is distinguished as the root; adding inserts clockwise of
the root, popping removes the root and makes its clockwise neighbour the new
root. The root may be shifted around the circle, either by a number of steps or
to a savepoint previously recorded by name:

	c := circle.New[int](true)
	c.Add(1)
	c.Save("start")
	c.Add(2)
	c.Shift(1)         // root is now 2
	c.ShiftTo("start") // root is 1 again

Elements live in an arena; savepoints are generational references into it.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package circle

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'nodemap'
func tracer() tracing.Trace {
	return tracing.Select("nodemap")
}

// ErrEmptyCircle is flagged whenever an operation requires at least one element.
var ErrEmptyCircle = errors.New("circle: circle is empty")

// ErrNoSavepoints is flagged for savepoint operations on a circle created
// without savepoints. ResetSavepoints enables them.
var ErrNoSavepoints = errors.New("circle: savepoints not enabled")

// ErrUnknownSavepoint is flagged by ShiftTo for a name never saved, or for a
// savepoint whose element has been popped.
var ErrUnknownSavepoint = errors.New("circle: savepoint not found")
