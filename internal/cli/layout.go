package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	gridio "github.com/matzehuels/glyphgrid/pkg/io"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
	"github.com/matzehuels/glyphgrid/pkg/render/sink"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		gf     gridFlags
		output string
		ops    bool
	)

	cmd := &cobra.Command{
		Use:   "layout [grid.toml]",
		Short: "Compute the layout of a grid as JSON",
		Long: `Compute the layout of a grid as JSON.

The output lists every cell with its glyph, centre and size, plus the
resolved empty region and highlight. It is the same document as
'render -f json' and is written to standard output unless -o is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := gf.load(cmd, args)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), spec, output, ops)
		},
	}

	gf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&ops, "ops", false, "include draw calls")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, stdout io.Writer, spec gridio.Spec, output string, ops bool) error {
	logger := loggerFromContext(ctx)
	l := pipeline.Layout(pipeline.OptionsFromSpec(spec))
	logger.Debug("computed layout", "cells", len(l.Cells), "width", l.Width, "height", l.Height)

	var opts []sink.JSONOption
	if ops {
		opts = append(opts, sink.WithJSONOps())
	}
	if output == "" {
		return gridio.WriteLayout(stdout, l, opts...)
	}
	if err := gridio.ExportLayout(l, output, opts...); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(l.Cells), nil, false)
	printNewline()
	printNextStep("Inspect", appName+" inspect")
	return nil
}
