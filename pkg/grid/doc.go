// Package grid computes the cell layout and glyph selection for a glyph grid.
//
// # Overview
//
// A grid is a rectangle of Columns × Rows cells, each CellWidth × CellHeight
// user units before scaling. [Compute] turns a [Config], an optional empty
// [Region], an optional highlight [Cell] and a scale factor into a [Layout]:
// one [Instruction] per cell in row-major order.
//
// # Glyph Rules
//
// Each cell receives exactly one glyph, chosen in priority order:
//
//  1. First column: [Start] (a triangle near the bottom edge)
//  2. Last column: [End] (a rounded rectangle near the top edge)
//  3. Inside the empty region: [None], except the highlight cell which gets [Multi]
//  4. Even column: [Dot]
//  5. Odd column: [Ring]
//
// Every cell also gets a 1-unit border, whatever glyph it carries.
//
// # Clamping
//
// The empty region and highlight are never rejected. Missing bounds take
// defaults, column bounds are pulled off the first and last columns, and
// inverted bounds are reset (see [ResolveRegion] and [ResolveHighlight]).
// Row bounds are not limited to the grid.
// The region rule is only active when [RegionActive] reports true.
//
// # Usage
//
//	l := grid.Compute(grid.Config{Columns: 5, Rows: 5, CellWidth: 10, CellHeight: 10}, nil, nil, 1)
//	for _, c := range l.Cells {
//	    fmt.Println(c.Row, c.Col, c.Glyph)
//	}
//
// Compute is pure: it does not modify its inputs and identical inputs always
// yield identical layouts.
package grid
