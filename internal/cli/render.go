package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

// renderFlags are the flags of the render command.
type renderFlags struct {
	grid    gridFlags
	output  string
	formats string
	noCache bool
	opts    pipeline.Options
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	f := renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [grid.toml]",
		Short: "Render a grid to SVG, PNG, JSON or text",
		Long: `Render a grid to SVG, PNG, JSON or text.

The grid is read from a TOML or JSON grid file, or described entirely with
flags when no file is given. Flags set on the command line override the file.

Each format is written to <base>.<format>, where <base> is the grid file name
without its extension (or "grid"). Use -o - to write a single format to
standard output.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := f.grid.load(cmd, args)
			if err != nil {
				return err
			}
			opts := pipeline.OptionsFromSpec(spec)
			opts.Formats = parseFormats(f.formats)
			opts.Theme = f.opts.Theme
			opts.PixelRatio = f.opts.PixelRatio
			opts.Transform = f.opts.Transform
			opts.Ops = f.opts.Ops
			opts.Refresh = f.opts.Refresh
			if err := errors.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), opts, basePath(f.output, args), f.output, f.noCache)
		},
	}

	f.grid.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, json, txt (comma-separated)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.opts.Refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().StringVar(&f.opts.Theme, "theme", pipeline.DefaultTheme, "colour theme: light, dark, mono")
	cmd.Flags().Float64Var(&f.opts.PixelRatio, "ratio", pipeline.DefaultPixelRatio, "device pixel ratio for svg and png")
	cmd.Flags().Float64Var(&f.opts.Transform.OffsetX, "offset-x", 0, "horizontal pan offset")
	cmd.Flags().Float64Var(&f.opts.Transform.OffsetY, "offset-y", 0, "vertical pan offset")
	cmd.Flags().BoolVar(&f.opts.Ops, "ops", false, "include draw calls in json output")

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, opts pipeline.Options, base, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	opts.Logger = c.Logger
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.Formats)))

	if output == "-" {
		if len(opts.Formats) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "-o - needs exactly one format, got %d", len(opts.Formats))
		}
		_, err := stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		path := base + "." + format
		if len(opts.Formats) == 1 && output != "" && filepath.Ext(output) != "" {
			path = output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		c.Logger.Debug("wrote artifact", "path", path, "bytes", len(result.Artifacts[format]))
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Cells, opts.Formats, result.CacheInfo.RenderHit)
	return nil
}
