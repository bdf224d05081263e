package pipeline

import (
	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/render/sink"
)

// =============================================================================
// Size Limits
// =============================================================================

const (
	// MaxCells bounds Columns × Rows for one layout pass.
	MaxCells = 1 << 20

	// MaxArea bounds a surface: logical units² for a layout, device pixels
	// for PNG and characters for text.
	MaxArea = 1 << 26
)

// CheckSize rejects a grid of shape c laid out at scale when it has more
// than [MaxCells] cells or its scaled size exceeds [MaxArea].
// c must already be valid.
func CheckSize(c grid.Config, scale float64) error {
	if c.Rows > 0 && c.Columns > MaxCells/c.Rows {
		return errors.New(errors.ErrCodeInvalidSize,
			"grid of %d×%d cells exceeds the limit of %d cells", c.Columns, c.Rows, MaxCells)
	}
	return CheckArea(float64(c.Columns)*c.CellWidth*scale, float64(c.Rows)*c.CellHeight*scale, 1)
}

// CheckArea rejects a surface of width × height logical units drawn at
// ratio when its backing area exceeds [MaxArea].
func CheckArea(width, height, ratio float64) error {
	area := width * ratio * height * ratio
	if !(area <= MaxArea) {
		return errors.New(errors.ErrCodeInvalidSize,
			"surface of %.0f×%.0f at ratio %v exceeds the limit of %d", width, height, ratio, MaxArea)
	}
	return nil
}

// checkRenderSize rejects formats whose backing buffer would exceed
// [MaxArea]. SVG and JSON grow with the cell count only.
func checkRenderSize(l grid.Layout, format string, ratio float64) error {
	switch format {
	case FormatPNG:
		if ratio <= 0 {
			ratio = 1
		}
		return CheckArea(l.Width, l.Height, ratio)
	case FormatText:
		cols, rows := sink.TextSize(l)
		return CheckArea(float64(cols), float64(rows), 1)
	}
	return nil
}
