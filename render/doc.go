/*
Package render outputs containers to a console with a fixed width font.

Grids are printed as column-aligned tables. Column widths are measured in
fixed-width positions ('en's) according to Unicode East Asian Width rules,
so that cells holding wide characters keep the columns aligned. Positions to
the right of a row's end, where longer rows below or above have cells, are
marked as gaps. Cell roles (row start, interior, row end, gap) may be
colored.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package render

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'nodemap'
func tracer() tracing.Trace {
	return tracing.Select("nodemap")
}
