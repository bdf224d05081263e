package grid

// Glyph geometry as fractions of the scaled cell.
const (
	anchorX = 0.3 // horizontal anchor of start, dot and ring, × width

	startSide = 0.2 // triangle side, × height

	endAnchorX = 0.37 // × width
	endAnchorY = 0.3  // × height
	endSize    = 0.45 // × height

	markAnchorY = 0.5  // vertical anchor of dot and ring, × height
	dotRadius   = 0.06 // × height
	ringRadius  = 0.1  // × height
)

// Instruction is the draw instruction for one cell.
//
// X, Y, W, H is the cell rectangle, which always receives a 1-unit border
// after the glyph. AnchorX, AnchorY and Size parameterise the glyph:
// the triangle side for [Start], the box size for [End], the radius for
// [Dot] and [Ring]. [Multi] fills the whole cell and ignores Size.
type Instruction struct {
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	Glyph   Glyph   `json:"glyph"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w"`
	H       float64 `json:"h"`
	AnchorX float64 `json:"anchor_x"`
	AnchorY float64 `json:"anchor_y"`
	Size    float64 `json:"size,omitempty"`
}

// Layout is the result of one layout pass.
type Layout struct {
	Config       Config        `json:"config"`
	Scale        float64       `json:"scale"`
	Width        float64       `json:"width"`
	Height       float64       `json:"height"`
	RegionActive bool          `json:"region_active"`
	Region       Bounds        `json:"region"`
	Highlight    Position      `json:"highlight"`
	Cells        []Instruction `json:"cells"`
}

// Compute lays out every cell of c at the given scale.
//
// Cells are emitted row by row, left to right, exactly once each. region
// and highlight may be nil; see [ResolveRegion] and [ResolveHighlight] for
// how they are completed. A non-positive Rows or Columns yields no cells.
func Compute(c Config, region *Region, highlight *Cell, scale float64) Layout {
	w := c.CellWidth * scale
	h := c.CellHeight * scale

	bounds := ResolveRegion(c, region)
	l := Layout{
		Config:       c,
		Scale:        scale,
		Width:        float64(max(c.Columns, 0)) * w,
		Height:       float64(max(c.Rows, 0)) * h,
		RegionActive: RegionActive(c),
		Region:       bounds,
		Highlight:    ResolveHighlight(bounds, highlight),
	}
	if c.Rows <= 0 || c.Columns <= 0 {
		return l
	}

	l.Cells = make([]Instruction, 0, c.Rows*c.Columns)
	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Columns; col++ {
			l.Cells = append(l.Cells, l.cell(row, col, w, h))
		}
	}
	return l
}

func (l *Layout) cell(row, col int, w, h float64) Instruction {
	x := float64(col) * w
	y := float64(row) * h
	in := Instruction{Row: row, Col: col, X: x, Y: y, W: w, H: h}

	switch {
	case col == 0:
		side := h * startSide
		in.Glyph = Start
		in.AnchorX, in.AnchorY, in.Size = x+w*anchorX, y+h-side, side
	case col == l.Config.Columns-1:
		in.Glyph = End
		in.AnchorX, in.AnchorY, in.Size = x+w*endAnchorX, y+h*endAnchorY, h*endSize
	case l.RegionActive && l.Region.Contains(row, col):
		if l.Highlight.Row == row && l.Highlight.Col == col {
			in.Glyph = Multi
			in.AnchorX, in.AnchorY = x, y
		}
	case col%2 == 0:
		in.Glyph = Dot
		in.AnchorX, in.AnchorY, in.Size = x+w*anchorX, y+h*markAnchorY, h*dotRadius
	default:
		in.Glyph = Ring
		in.AnchorX, in.AnchorY, in.Size = x+w*anchorX, y+h*markAnchorY, h*ringRadius
	}
	return in
}

// At returns the instruction for (row, col).
func (l Layout) At(row, col int) (Instruction, bool) {
	if row < 0 || col < 0 || row >= l.Config.Rows || col >= l.Config.Columns {
		return Instruction{}, false
	}
	i := row*l.Config.Columns + col
	if i >= len(l.Cells) {
		return Instruction{}, false
	}
	return l.Cells[i], true
}

// Counts returns how many cells carry each glyph.
func (l Layout) Counts() map[Glyph]int {
	counts := make(map[Glyph]int, len(Glyphs))
	for _, c := range l.Cells {
		counts[c.Glyph]++
	}
	return counts
}
