package grid

// maxDefaultRow caps the default empty region to the first three rows.
const maxDefaultRow = 2

// RegionActive reports whether the empty-region rule applies to c.
// Grids with two or fewer columns have no room for it.
func RegionActive(c Config) bool {
	return c.Columns > 2 && c.Rows > 0
}

// DefaultBounds returns the region used when no bound is supplied.
func DefaultBounds(c Config) Bounds {
	return Bounds{
		FromRow: 0,
		ToRow:   min(c.Rows-1, maxDefaultRow),
		FromCol: 1,
		ToCol:   c.Columns - 1,
	}
}

// ResolveRegion fills the missing bounds of r from [DefaultBounds] and
// clamps the result with [ClampBounds]. A nil r yields the clamped defaults.
func ResolveRegion(c Config, r *Region) Bounds {
	b := DefaultBounds(c)
	if r != nil {
		if r.FromRow != nil {
			b.FromRow = *r.FromRow
		}
		if r.ToRow != nil {
			b.ToRow = *r.ToRow
		}
		if r.FromCol != nil {
			b.FromCol = *r.FromCol
		}
		if r.ToCol != nil {
			b.ToCol = *r.ToCol
		}
	}
	return ClampBounds(c, b)
}

// ClampBounds keeps b off the reserved first and last columns and repairs
// inverted ranges.
//
// Columns are first limited to [1, Columns-1]; rows are not limited, so a
// region may reach the last row or lie entirely outside the grid. Then, per
// axis: a start past the end resets to the axis minimum (row 0, column 1),
// and an end still before the start is raised to the start.
// ClampBounds is idempotent.
func ClampBounds(c Config, b Bounds) Bounds {
	b.FromCol = max(b.FromCol, 1)
	b.ToCol = min(b.ToCol, c.Columns-1)

	if b.FromRow > b.ToRow {
		b.FromRow = 0
	}
	if b.ToRow < b.FromRow {
		b.ToRow = b.FromRow
	}

	if b.FromCol > b.ToCol {
		b.FromCol = 1
	}
	if b.ToCol < b.FromCol {
		b.ToCol = b.FromCol
	}
	return b
}

// ResolveHighlight places the highlight inside b. The default is row 0,
// column 1; a coordinate outside [From, To) snaps to From.
func ResolveHighlight(b Bounds, h *Cell) Position {
	p := Position{Row: 0, Col: 1}
	if h != nil {
		if h.Row != nil {
			p.Row = *h.Row
		}
		if h.Col != nil {
			p.Col = *h.Col
		}
	}

	if p.Col < b.FromCol || p.Col >= b.ToCol {
		p.Col = b.FromCol
	}
	if p.Row < b.FromRow || p.Row >= b.ToRow {
		p.Row = b.FromRow
	}
	return p
}
