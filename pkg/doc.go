// Package pkg provides the core libraries for glyphgrid.
//
// # Overview
//
// glyphgrid lays out a rectangular grid of cells, decorates every cell with
// a glyph chosen by its position, and renders the result to SVG, PNG, text
// or JSON. A pan/zoom controller moves the rendered grid around without
// ever changing its logical coordinates.
//
// # Architecture
//
// The typical data flow:
//
//	Grid file (TOML/JSON) or flags
//	         ↓
//	    [io] package (decode + validate a Spec)
//	         ↓
//	    [grid] package (pure layout: cells, glyphs, sizes)
//	         ↓
//	    [render/canvas] package (painter over a drawing Surface)
//	         ↓
//	    [render/sink] package (SVG, PNG, text, JSON)
//
// [pipeline] ties the steps together behind a content-addressed [cache],
// and [interact] holds the drag state machine that [session] exposes to
// the HTTP [server].
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/glyphgrid/pkg/grid"
//	    "github.com/matzehuels/glyphgrid/pkg/render/sink"
//	)
//
//	cfg := grid.Config{Columns: 8, Rows: 5, CellWidth: 40, CellHeight: 40}
//	l := grid.Compute(cfg, nil, nil, 1)
//	svg := sink.RenderSVG(l)
//
// # Main Packages
//
//   - [grid]: layout engine and glyph assignment
//   - [interact]: pointer-driven pan and scale controller
//   - [render/canvas]: surface abstraction and the layout painter
//   - [render/sink]: output formats
//   - [io]: grid and layout file encoding
//   - [pipeline]: layout → render orchestration with caching
//   - [cache]: file, Redis and in-memory artifact caches
//   - [session]: server-side interaction sessions
//   - [server]: HTTP and WebSocket API
//   - [observability]: hooks for logging and metrics
//   - [errors]: coded errors shared by every layer
//   - [httputil]: JSON responses and query parsing
//   - [buildinfo]: version information set at link time
package pkg
