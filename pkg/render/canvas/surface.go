// Package canvas defines the drawing surface contract and executes layout
// passes against it.
//
// A [Surface] is whatever a layout is drawn onto: an SVG document, a raster
// image, a terminal rune buffer, or a [Recorder] in tests. [Paint] performs
// one synchronous pass: size the surface, clear it, then draw each cell's
// glyph followed by its border, in row-major order.
package canvas

import "github.com/matzehuels/glyphgrid/pkg/grid"

// BorderWidth is the line width of every cell border.
const BorderWidth = 1.0

// Surface is a 2D drawing target in logical units.
//
// Implementations map one logical unit to one device pixel after Resize,
// whatever the display density. Drawing methods mutate the surface in place
// and report nothing back.
type Surface interface {
	// Resize sets the logical size and configures the backing resolution.
	Resize(width, height float64)
	// Clear erases the full surface.
	Clear()
	// Triangle draws the start glyph with its top-left at (x, y).
	Triangle(x, y, side float64)
	// RoundRect draws the end glyph, a size × size rounded square at (x, y).
	RoundRect(x, y, size float64)
	// Circle draws a filled dot centred on (x, y).
	Circle(x, y, r float64)
	// Ring draws a circle of radius r with a concentric inner ring.
	Ring(x, y, r float64)
	// MultiSymbol draws a cluster of marks filling the w × h box at (x, y).
	MultiSymbol(x, y, w, h float64)
	// StrokeRect outlines a rectangle with a [BorderWidth] line.
	StrokeRect(x, y, w, h float64)
}

// Paint draws l onto s. A nil surface makes Paint a no-op: nothing is
// attached yet, which is not an error.
func Paint(s Surface, l grid.Layout) {
	if s == nil {
		return
	}
	s.Resize(l.Width, l.Height)
	s.Clear()
	for _, c := range l.Cells {
		DrawGlyph(s, c)
		s.StrokeRect(c.X, c.Y, c.W, c.H)
	}
}

// DrawGlyph draws the glyph of a single instruction, without its border.
func DrawGlyph(s Surface, c grid.Instruction) {
	switch c.Glyph {
	case grid.Start:
		s.Triangle(c.AnchorX, c.AnchorY, c.Size)
	case grid.End:
		s.RoundRect(c.AnchorX, c.AnchorY, c.Size)
	case grid.Multi:
		s.MultiSymbol(c.X, c.Y, c.W, c.H)
	case grid.Dot:
		s.Circle(c.AnchorX, c.AnchorY, c.Size)
	case grid.Ring:
		s.Ring(c.AnchorX, c.AnchorY, c.Size)
	}
}
