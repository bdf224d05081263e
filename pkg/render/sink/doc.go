// Package sink provides output format renderers for grid layouts.
//
// # Overview
//
// A "sink" turns a computed [grid.Layout] into a final output format. Each
// raster or vector sink implements [canvas.Surface] and is driven by
// [canvas.Paint], so every format draws the same glyphs in the same order:
//
//   - SVG: hand-written vector output, one element per glyph and border
//   - PNG: raster output drawn with github.com/fogleman/gg
//   - Text: a character buffer for terminals, also used by the viewer
//   - JSON: the layout itself, with glyph counts and optional draw calls
//
// # Usage
//
//	l := grid.Compute(cfg, region, highlight, 1)
//	svg := sink.RenderSVG(l, sink.WithPalette(sink.Dark))
//	png, err := sink.RenderPNG(l, sink.WithPNGPixelRatio(2))
//	txt := sink.RenderText(l)
//	data, err := sink.RenderJSON(l, sink.WithJSONOps())
//
// # Pixel Ratio
//
// SVG and PNG accept a device pixel ratio. Drawing always happens in
// logical units; only the backing resolution changes, so borders stay one
// logical unit wide on any display.
//
// # View Transform
//
// The pan offset of an [interact.ViewTransform] is applied as a translation
// of the content. The zoom is not: it is already baked into the layout by
// [grid.Compute], which is how the viewer and the HTTP server use it.
package sink
