// Package io reads grid files and exports computed layouts.
//
// # Grid Files
//
// A grid file describes one grid: its shape, an optional empty region, an
// optional highlight cell and a scale. TOML and JSON are both accepted and
// chosen by file extension:
//
//	columns     = 8
//	rows        = 6
//	cell_width  = 40
//	cell_height = 40
//	scale       = 1.5
//
//	[empty]
//	from_row = 1
//	to_row   = 4
//
//	[highlight]
//	row = 2
//	col = 3
//
// The same document in JSON:
//
//	{
//	  "columns": 8, "rows": 6, "cell_width": 40, "cell_height": 40,
//	  "scale": 1.5,
//	  "empty": {"from_row": 1, "to_row": 4},
//	  "highlight": {"row": 2, "col": 3}
//	}
//
// Every key of the empty and highlight tables is optional; missing bounds
// take the defaults of [grid.ResolveRegion] and [grid.ResolveHighlight].
// Unknown keys are rejected so typos do not silently fall back to defaults.
//
// # Layout Export
//
// [WriteLayout] and [ExportLayout] write a computed layout in the JSON
// document form of [sink.RenderJSON]. [ReadLayout] and [ImportLayout]
// decode it again, so an exported layout can be re-rendered identically
// without the grid file it came from.
package io
