package sink

import (
	"math"
	"strings"

	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/interact"
	"github.com/matzehuels/glyphgrid/pkg/render/canvas"
)

// Runes used by the text surface.
const (
	RuneStart = '▲'
	RuneEnd   = '■'
	RuneDot   = '•'
	RuneRing  = '◎'

	runeHorizontal = '-'
	runeVertical   = '|'
	runeCorner     = '+'
)

// Characters per unscaled cell in [RenderText].
const (
	textCellCols = 6
	textCellRows = 3
)

// TextKind classifies a character cell so a host can colour it.
type TextKind uint8

const (
	TextBlank TextKind = iota
	TextBorder
	TextGlyph
	TextAccent
)

// TextCell is one character of a [TextSurface].
type TextCell struct {
	Rune rune
	Kind TextKind
}

// TextOption configures a [TextSurface].
type TextOption func(*TextSurface)

// WithCharSize sets how many logical units one character covers.
func WithCharSize(w, h float64) TextOption {
	return func(s *TextSurface) { s.charW, s.charH = w, h }
}

// WithViewport fixes the buffer at cols × rows characters. Resize then
// leaves the buffer alone and content outside it is clipped.
func WithViewport(cols, rows int) TextOption {
	return func(s *TextSurface) { s.fixedCols, s.fixedRows = cols, rows }
}

// WithTextTransform applies the view offset as a translation of the content.
func WithTextTransform(t interact.ViewTransform) TextOption {
	return func(s *TextSurface) { s.offsetX, s.offsetY = t.OffsetX, t.OffsetY }
}

// RenderText paints l onto a text surface sized to the layout and returns
// it as newline-separated lines. By default a cell of unscaled size spans
// six columns and three rows, so the layout scale enlarges the output.
func RenderText(l grid.Layout, opts ...TextOption) string {
	o := []TextOption{WithCharSize(l.Config.CellWidth/textCellCols, l.Config.CellHeight/textCellRows)}
	s := NewTextSurface(append(o, opts...)...)
	canvas.Paint(s, l)
	return s.String()
}

// TextSize returns the buffer size, in characters, [RenderText] allocates
// for l without a viewport.
func TextSize(l grid.Layout) (cols, rows int) {
	charW := l.Config.CellWidth / textCellCols
	charH := l.Config.CellHeight / textCellRows
	if charW <= 0 || charH <= 0 {
		return 0, 0
	}
	return int(math.Ceil(l.Width/charW-epsilon)) + 1, int(math.Ceil(l.Height/charH-epsilon)) + 1
}

// TextSurface is a [canvas.Surface] that draws into a character buffer.
//
// Glyphs are placed on the character under their visual centre. Borders
// never overwrite glyphs, and crossing borders merge into corners.
type TextSurface struct {
	charW, charH         float64
	offsetX, offsetY     float64
	fixedCols, fixedRows int
	accent               bool
	buf                  [][]TextCell
}

// NewTextSurface returns an empty surface with one logical unit per character.
func NewTextSurface(opts ...TextOption) *TextSurface {
	s := &TextSurface{charW: 1, charH: 1}
	for _, opt := range opts {
		opt(s)
	}
	if s.charW <= 0 {
		s.charW = 1
	}
	if s.charH <= 0 {
		s.charH = 1
	}
	if s.fixedCols > 0 && s.fixedRows > 0 {
		s.allocate(s.fixedCols, s.fixedRows)
	}
	return s
}

// SetOffset translates all content drawn on the surface.
func (s *TextSurface) SetOffset(x, y float64) { s.offsetX, s.offsetY = x, y }

// Size returns the buffer size in characters.
func (s *TextSurface) Size() (cols, rows int) {
	if len(s.buf) == 0 {
		return 0, 0
	}
	return len(s.buf[0]), len(s.buf)
}

func (s *TextSurface) Resize(width, height float64) {
	if s.fixedCols > 0 && s.fixedRows > 0 {
		return
	}
	// One extra column and row hold the closing right and bottom borders.
	cols := int(math.Ceil(width/s.charW-epsilon)) + 1
	rows := int(math.Ceil(height/s.charH-epsilon)) + 1
	s.allocate(max(cols, 0), max(rows, 0))
}

func (s *TextSurface) allocate(cols, rows int) {
	s.buf = make([][]TextCell, rows)
	for i := range s.buf {
		s.buf[i] = make([]TextCell, cols)
	}
	s.Clear()
}

func (s *TextSurface) Clear() {
	for _, line := range s.buf {
		for i := range line {
			line[i] = TextCell{Rune: ' '}
		}
	}
}

func (s *TextSurface) Triangle(x, y, side float64) {
	s.glyph(x+side/2, y+side/2, RuneStart)
}

func (s *TextSurface) RoundRect(x, y, size float64) {
	s.glyph(x+size/2, y+size/2, RuneEnd)
}

func (s *TextSurface) Circle(x, y, _ float64) { s.glyph(x, y, RuneDot) }

func (s *TextSurface) Ring(x, y, _ float64) { s.glyph(x, y, RuneRing) }

func (s *TextSurface) MultiSymbol(x, y, w, h float64) {
	s.accent = true
	canvas.DrawCluster(s, x, y, w, h)
	s.accent = false
}

func (s *TextSurface) StrokeRect(x, y, w, h float64) {
	c0, r0 := s.cell(x, y)
	c1, r1 := s.cell(x+w, y+h)
	for c := c0; c <= c1; c++ {
		s.border(c, r0, runeHorizontal)
		s.border(c, r1, runeHorizontal)
	}
	for r := r0; r <= r1; r++ {
		s.border(c0, r, runeVertical)
		s.border(c1, r, runeVertical)
	}
	for _, p := range [][2]int{{c0, r0}, {c1, r0}, {c0, r1}, {c1, r1}} {
		if t, ok := s.at(p[0], p[1]); ok && t.Kind == TextBorder {
			t.Rune = runeCorner
		}
	}
}

// epsilon absorbs float error when logical positions land exactly on a
// character boundary.
const epsilon = 1e-6

func (s *TextSurface) cell(x, y float64) (col, row int) {
	col = int(math.Floor((x+s.offsetX)/s.charW + epsilon))
	row = int(math.Floor((y+s.offsetY)/s.charH + epsilon))
	return col, row
}

func (s *TextSurface) at(col, row int) (*TextCell, bool) {
	if row < 0 || row >= len(s.buf) || col < 0 || col >= len(s.buf[row]) {
		return nil, false
	}
	return &s.buf[row][col], true
}

func (s *TextSurface) glyph(x, y float64, r rune) {
	t, ok := s.at(s.cell(x, y))
	if !ok {
		return
	}
	t.Rune, t.Kind = r, TextGlyph
	if s.accent {
		t.Kind = TextAccent
	}
}

func (s *TextSurface) border(col, row int, r rune) {
	t, ok := s.at(col, row)
	if !ok {
		return
	}
	switch t.Kind {
	case TextBlank:
		t.Rune, t.Kind = r, TextBorder
	case TextBorder:
		if t.Rune != r {
			t.Rune = runeCorner
		}
	}
}

// Cells returns the buffer, row by row. The slices alias the surface.
func (s *TextSurface) Cells() [][]TextCell { return s.buf }

// Lines returns each buffer row as a string.
func (s *TextSurface) Lines() []string {
	lines := make([]string, len(s.buf))
	for i, row := range s.buf {
		var b strings.Builder
		for _, t := range row {
			b.WriteRune(t.Rune)
		}
		lines[i] = b.String()
	}
	return lines
}

// String returns the buffer with trailing spaces trimmed from each line.
func (s *TextSurface) String() string {
	lines := s.Lines()
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

var _ canvas.Surface = (*TextSurface)(nil)
