/*
Package script runs sequences of grid operations described in YAML.

A script names the operations to apply to a grid of strings, one after the
other:

	name: harness
	ops:
	  - op: push
	    value: "0"
	  - op: add
	    row: 0
	    value: "2"
	  - op: get
	    row: 0
	    col: 1
	    expect: "2"
	  - op: remove
	    row: 5
	    expect_error: out_of_bounds
	  - op: print

Supported operations are push, pop, add, remove, insert, delete, get, check,
print and deepprint. A step fails if the operation fails, if its result
differs from expect, or if it does not fail the way expect_error demands.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package script

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'nodemap'
func tracer() tracing.Trace {
	return tracing.Select("nodemap")
}
