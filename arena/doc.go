/*
Package arena provides slot storage with generational references.

Containers built from explicit links (grids, circles, trees) may keep their
nodes in an Arena instead of wiring raw pointers. Links are then expressed as
Refs, and a link which may be absent is expressed as a Link:

	a := arena.New[cell]()
	r := a.Alloc(cell{val: 7})
	l := arena.Some(r)
	if ref, ok := l.Get(); ok {
		c, _ := a.At(ref)
		...
	}

Every slot carries a generation counter. Freeing a slot bumps its generation,
therefore a Ref minted before the free is detected as stale, even if the slot
has been re-used by a later allocation. Stale access is reported as ErrStaleRef
and never silently yields another node's contents. A slot whose generation
counter is about to wrap is retired instead of being re-used.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package arena

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'nodemap'
func tracer() tracing.Trace {
	return tracing.Select("nodemap")
}
