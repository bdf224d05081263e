// Package pipeline provides the layout → render pipeline for glyphgrid.
//
// The CLI, the terminal viewer and the HTTP server all go through this
// package, so a grid renders identically whichever entry point asked for it.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: [grid.Compute] over the grid shape, empty region, highlight
//     and scale
//  2. Render: one artifact per requested format (SVG, PNG, JSON, text),
//     rendered concurrently from the same immutable layout
//
// Artifacts are cached by a hash of the layout plus the render settings.
// The layout itself is recomputed every time; it is cheaper than a cache
// lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.OptionsFromSpec(spec))
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/interact"
	gridio "github.com/matzehuels/glyphgrid/pkg/io"
	"github.com/matzehuels/glyphgrid/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Viewer, and Server
// =============================================================================

const (
	// DefaultScale is the layout scale when none is given.
	DefaultScale = 1.0

	// DefaultPixelRatio is the device pixel ratio for SVG and PNG output.
	DefaultPixelRatio = 1.0

	// DefaultTheme is the palette used when none is given.
	DefaultTheme = "light"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatText = "txt"
)

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
	FormatText: "text/plain; charset=utf-8",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Config    grid.Config  `json:"config"`
	Region    *grid.Region `json:"empty,omitempty"`
	Highlight *grid.Cell   `json:"highlight,omitempty"`
	Scale     float64      `json:"scale,omitempty"`

	// Render options
	Formats    []string               `json:"formats,omitempty"`
	Theme      string                 `json:"theme,omitempty"`
	PixelRatio float64                `json:"pixel_ratio,omitempty"`
	Transform  interact.ViewTransform `json:"transform"`
	Ops        bool                   `json:"ops,omitempty"` // include draw calls in JSON output
	Refresh    bool                   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// OptionsFromSpec returns options that lay out the grid file s.
func OptionsFromSpec(s gridio.Spec) Options {
	return Options{
		Config:    s.Config,
		Region:    s.Empty,
		Highlight: s.Highlight,
		Scale:     s.EffectiveScale(),
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed layout.
	Layout grid.Layout

	// LayoutHash is the content hash of the layout's JSON form.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Cells      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool     // Whether all artifacts came from cache
	Hits      []string // Formats served from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the grid and render settings and applies
// defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if err := grid.ValidateScale(o.Scale); err != nil {
		return err
	}
	return CheckSize(o.Config, o.Scale)
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.PixelRatio == 0 {
		o.PixelRatio = DefaultPixelRatio
	}
	if o.Transform.Scale == 0 {
		o.Transform.Scale = o.Scale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := errors.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PixelRatio < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "pixel ratio must be positive, got %v", o.PixelRatio)
	}
	_, err := sink.Theme(o.Theme)
	return err
}
