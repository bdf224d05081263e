package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
	"github.com/matzehuels/glyphgrid/pkg/render/sink"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		gf      gridFlags
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [grid.toml]",
		Short: "Summarise a grid layout",
		Long: `Summarise a grid layout: its size, the resolved empty region and
highlight, and how many cells carry each glyph. With --preview the grid is
also drawn as text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := gf.load(cmd, args)
			if err != nil {
				return err
			}
			l := pipeline.Layout(pipeline.OptionsFromSpec(spec))
			return writeInspect(cmd.OutOrStdout(), l, preview)
		},
	}

	gf.register(cmd)
	cmd.Flags().BoolVar(&preview, "preview", false, "draw the grid as text")

	return cmd
}

// writeInspect prints the summary of l.
func writeInspect(w io.Writer, l grid.Layout, preview bool) error {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Grid"))
	b.WriteString("\n")
	kv := func(key, value string) {
		b.WriteString(styleKey.Render(key) + " " + StyleValue.Render(value) + "\n")
	}
	kv("Shape", fmt.Sprintf("%d × %d cells of %s × %s", l.Config.Columns, l.Config.Rows,
		num(l.Config.CellWidth), num(l.Config.CellHeight)))
	kv("Scale", num(l.Scale))
	kv("Size", num(l.Width)+" × "+num(l.Height))
	if l.RegionActive {
		kv("Empty", fmt.Sprintf("rows %d–%d, cols %d–%d (exclusive)",
			l.Region.FromRow, l.Region.ToRow, l.Region.FromCol, l.Region.ToCol))
	} else {
		kv("Empty", StyleDim.Render("inactive (grid too small)"))
	}
	kv("Highlight", fmt.Sprintf("row %d, col %d", l.Highlight.Row, l.Highlight.Col))
	b.WriteString("\n")
	b.WriteString(glyphTable(l))
	b.WriteString("\n")

	if preview {
		b.WriteString("\n")
		b.WriteString(sink.RenderText(l))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// glyphTable renders the per-glyph cell counts.
func glyphTable(l grid.Layout) string {
	counts := l.Counts()
	total := len(l.Cells)
	rows := make([][]string, 0, len(grid.Glyphs))
	for _, g := range grid.Glyphs {
		n := counts[g]
		share := "0%"
		if total > 0 {
			share = strconv.Itoa(n*100/total) + "%"
		}
		rows = append(rows, []string{g.String(), strconv.Itoa(n), share})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Glyph", "Cells", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorWhite)
			default:
				return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
			}
		})
	return t.Render()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
