package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/render/sink"
)

// Layout computes the layout described by opts.
func Layout(opts Options) grid.Layout {
	return grid.Compute(opts.Config, opts.Region, opts.Highlight, opts.Scale)
}

// RenderFormat renders l in a single format.
func RenderFormat(l grid.Layout, format string, opts Options) ([]byte, error) {
	palette, err := sink.Theme(opts.Theme)
	if err != nil {
		return nil, err
	}
	if err := checkRenderSize(l, format, opts.PixelRatio); err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(l,
			sink.WithPalette(palette),
			sink.WithPixelRatio(opts.PixelRatio),
			sink.WithTransform(opts.Transform),
		), nil
	case FormatPNG:
		return sink.RenderPNG(l,
			sink.WithPNGPalette(palette),
			sink.WithPNGPixelRatio(opts.PixelRatio),
			sink.WithPNGTransform(opts.Transform),
		)
	case FormatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONTransform(opts.Transform), sink.WithJSONPalette(palette)}
		if opts.Ops {
			jsonOpts = append(jsonOpts, sink.WithJSONOps())
		}
		return sink.RenderJSON(l, jsonOpts...)
	case FormatText:
		return []byte(sink.RenderText(l, sink.WithTextTransform(opts.Transform)) + "\n"), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

// Render renders l in every format of opts.Formats concurrently.
// The layout is shared read-only; each format paints its own surface.
func Render(ctx context.Context, l grid.Layout, opts Options) (map[string][]byte, error) {
	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		format := format
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := RenderFormat(l, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
