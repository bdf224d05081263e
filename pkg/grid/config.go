package grid

import (
	"math"

	"github.com/matzehuels/glyphgrid/pkg/errors"
)

// Config is the logical shape of a grid. It is read-only for a layout pass.
type Config struct {
	Columns    int     `json:"columns" toml:"columns"`
	Rows       int     `json:"rows" toml:"rows"`
	CellWidth  float64 `json:"cell_width" toml:"cell_width"`
	CellHeight float64 `json:"cell_height" toml:"cell_height"`
}

// Validate reports whether c describes a drawable grid.
// Compute does not call Validate; hosts do, before accepting user input.
func (c Config) Validate() error {
	if c.Columns < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "columns must be at least 1, got %d", c.Columns)
	}
	if c.Rows < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "rows must be at least 1, got %d", c.Rows)
	}
	if !positive(c.CellWidth) {
		return errors.New(errors.ErrCodeInvalidConfig, "cell width must be positive, got %v", c.CellWidth)
	}
	if !positive(c.CellHeight) {
		return errors.New(errors.ErrCodeInvalidConfig, "cell height must be positive, got %v", c.CellHeight)
	}
	return nil
}

// ValidateScale reports whether s is usable as a layout scale.
func ValidateScale(s float64) error {
	if !positive(s) {
		return errors.New(errors.ErrCodeInvalidScale, "scale must be a positive number, got %v", s)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Region is an optional rectangular range of interior cells that are left
// blank, except for the highlight cell. Nil fields take defaults.
//
// FromRow/FromCol are inclusive, ToRow/ToCol are exclusive.
type Region struct {
	FromRow *int `json:"from_row,omitempty" toml:"from_row"`
	ToRow   *int `json:"to_row,omitempty" toml:"to_row"`
	FromCol *int `json:"from_col,omitempty" toml:"from_col"`
	ToCol   *int `json:"to_col,omitempty" toml:"to_col"`
}

// Cell optionally identifies the highlight cell. Nil fields take defaults.
type Cell struct {
	Row *int `json:"row,omitempty" toml:"row"`
	Col *int `json:"col,omitempty" toml:"col"`
}

// Int returns a pointer to v, for building a [Region] or [Cell] literal.
func Int(v int) *int { return &v }

// Bounds is a resolved empty region with every bound present.
type Bounds struct {
	FromRow int `json:"from_row"`
	ToRow   int `json:"to_row"`
	FromCol int `json:"from_col"`
	ToCol   int `json:"to_col"`
}

// Contains reports whether (row, col) lies in the half-open rectangle
// [FromRow, ToRow) × [FromCol, ToCol).
func (b Bounds) Contains(row, col int) bool {
	return row >= b.FromRow && row < b.ToRow && col >= b.FromCol && col < b.ToCol
}

// Position is a resolved highlight cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
