package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/pkg/grid"
	gridio "github.com/matzehuels/glyphgrid/pkg/io"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

// Grid shape used when no grid file is given.
const (
	defaultColumns    = 8
	defaultRows       = 5
	defaultCellWidth  = 40
	defaultCellHeight = 40

	defaultBase = "grid"
)

// gridFlags are the grid file fields exposed as flags. Without a grid file
// they describe the grid on their own; with one, only flags set on the
// command line override the file.
type gridFlags struct {
	columns, rows         int
	cellWidth, cellHeight float64
	scale                 float64
	fromRow, toRow        int
	fromCol, toCol        int
	hlRow, hlCol          int
}

func (g *gridFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&g.columns, "columns", defaultColumns, "number of columns")
	f.IntVar(&g.rows, "rows", defaultRows, "number of rows")
	f.Float64Var(&g.cellWidth, "cell-width", defaultCellWidth, "unscaled cell width")
	f.Float64Var(&g.cellHeight, "cell-height", defaultCellHeight, "unscaled cell height")
	f.Float64Var(&g.scale, "scale", 1, "layout scale")
	f.IntVar(&g.fromRow, "from-row", 0, "first row of the empty region")
	f.IntVar(&g.toRow, "to-row", 0, "end row of the empty region (exclusive)")
	f.IntVar(&g.fromCol, "from-col", 0, "first column of the empty region")
	f.IntVar(&g.toCol, "to-col", 0, "end column of the empty region (exclusive)")
	f.IntVar(&g.hlRow, "hl-row", 0, "highlight row")
	f.IntVar(&g.hlCol, "hl-col", 0, "highlight column")
}

// load reads the grid file named by args, if any, and applies the flags
// over it. The result is validated.
func (g *gridFlags) load(cmd *cobra.Command, args []string) (gridio.Spec, error) {
	var spec gridio.Spec
	fromFile := len(args) > 0
	if fromFile {
		var err error
		if spec, err = gridio.ReadSpecFile(args[0]); err != nil {
			return gridio.Spec{}, err
		}
	}

	changed := func(name string) bool { return !fromFile || cmd.Flags().Changed(name) }
	if changed("columns") {
		spec.Columns = g.columns
	}
	if changed("rows") {
		spec.Rows = g.rows
	}
	if changed("cell-width") {
		spec.CellWidth = g.cellWidth
	}
	if changed("cell-height") {
		spec.CellHeight = g.cellHeight
	}
	if changed("scale") {
		spec.Scale = g.scale
	}

	// Region and highlight bounds are only ever taken from explicit flags;
	// unset ones keep their engine defaults.
	set := cmd.Flags().Changed
	region := func() *grid.Region {
		if spec.Empty == nil {
			spec.Empty = &grid.Region{}
		}
		return spec.Empty
	}
	if set("from-row") {
		region().FromRow = grid.Int(g.fromRow)
	}
	if set("to-row") {
		region().ToRow = grid.Int(g.toRow)
	}
	if set("from-col") {
		region().FromCol = grid.Int(g.fromCol)
	}
	if set("to-col") {
		region().ToCol = grid.Int(g.toCol)
	}
	highlight := func() *grid.Cell {
		if spec.Highlight == nil {
			spec.Highlight = &grid.Cell{}
		}
		return spec.Highlight
	}
	if set("hl-row") {
		highlight().Row = grid.Int(g.hlRow)
	}
	if set("hl-col") {
		highlight().Col = grid.Int(g.hlCol)
	}

	if err := spec.Validate(); err != nil {
		return gridio.Spec{}, err
	}
	if err := pipeline.CheckSize(spec.Config, spec.EffectiveScale()); err != nil {
		return gridio.Spec{}, err
	}
	return spec, nil
}

// basePath derives the base output path. An explicit output has a known
// extension stripped; otherwise the grid file name without its extension
// is used, or "grid" when there is no file.
func basePath(output string, args []string) string {
	if output != "" {
		ext := filepath.Ext(output)
		switch strings.TrimPrefix(ext, ".") {
		case "svg", "png", "json", "txt":
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if len(args) > 0 {
		return strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	}
	return defaultBase
}
