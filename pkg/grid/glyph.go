package grid

import "fmt"

// Glyph is the shape drawn inside a cell.
type Glyph int

const (
	// None leaves the cell blank (border only).
	None Glyph = iota
	// Start is the triangle reserved for the first column.
	Start
	// End is the rounded rectangle reserved for the last column.
	End
	// Multi is the multi-symbol cluster drawn on the highlight cell.
	Multi
	// Dot is the small filled circle of even interior columns.
	Dot
	// Ring is the circle with a concentric inner ring of odd interior columns.
	Ring
)

var glyphNames = [...]string{
	None:  "none",
	Start: "start",
	End:   "end",
	Multi: "multi",
	Dot:   "dot",
	Ring:  "ring",
}

// Glyphs lists every glyph kind in declaration order.
var Glyphs = []Glyph{None, Start, End, Multi, Dot, Ring}

func (g Glyph) String() string {
	if g >= 0 && int(g) < len(glyphNames) {
		return glyphNames[g]
	}
	return fmt.Sprintf("glyph(%d)", int(g))
}

// MarshalText encodes g by name.
func (g Glyph) MarshalText() ([]byte, error) {
	if g < 0 || int(g) >= len(glyphNames) {
		return nil, fmt.Errorf("unknown glyph %d", int(g))
	}
	return []byte(glyphNames[g]), nil
}

// UnmarshalText decodes a glyph name produced by MarshalText.
func (g *Glyph) UnmarshalText(b []byte) error {
	for i, name := range glyphNames {
		if name == string(b) {
			*g = Glyph(i)
			return nil
		}
	}
	return fmt.Errorf("unknown glyph %q", b)
}
