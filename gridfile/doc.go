/*
Package gridfile provides API helpers to load UTF-8 text files as grids.

Every non-empty line of a text file becomes a row of a grid, every field of a
line a node of the row. Lines starting with a comment marker are skipped.
Reading is done by a goroutine which broadcasts the lines it has split; the
grid is assembled by a subscriber on the calling goroutine, while preserving a
synchronous Load API.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package gridfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'nodemap'
func tracer() tracing.Trace {
	return tracing.Select("nodemap")
}
