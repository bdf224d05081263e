package sink

import (
	"encoding/json"

	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/interact"
	"github.com/matzehuels/glyphgrid/pkg/render/canvas"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	ops       bool
	transform *interact.ViewTransform
	palette   *Palette
}

// WithJSONOps includes the surface operations a painter would issue,
// one string per call, e.g. "circle(30,50,6)".
func WithJSONOps() JSONOption { return func(r *jsonRenderer) { r.ops = true } }

// WithJSONTransform records the view transform the layout is shown with.
func WithJSONTransform(t interact.ViewTransform) JSONOption {
	return func(r *jsonRenderer) { r.transform = &t }
}

// WithJSONPalette records the palette so a consumer can reproduce colours.
func WithJSONPalette(p Palette) JSONOption { return func(r *jsonRenderer) { r.palette = &p } }

// Document is the JSON form of a layout.
//
// It embeds the full [grid.Layout], so a document can be decoded back into
// a layout and re-rendered identically.
type Document struct {
	grid.Layout
	Counts    map[string]int          `json:"counts"`
	Transform *interact.ViewTransform `json:"transform,omitempty"`
	Palette   *Palette                `json:"palette,omitempty"`
	Ops       []string                `json:"ops,omitempty"`
}

// RenderJSON exports the layout as a pretty-printed JSON [Document].
//
// RenderJSON does not modify l and is safe to call concurrently.
func RenderJSON(l grid.Layout, opts ...JSONOption) ([]byte, error) {
	return json.MarshalIndent(NewDocument(l, opts...), "", "  ")
}

// NewDocument builds the document [RenderJSON] marshals.
func NewDocument(l grid.Layout, opts ...JSONOption) Document {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	doc := Document{
		Layout:    l,
		Counts:    make(map[string]int, len(grid.Glyphs)),
		Transform: r.transform,
		Palette:   r.palette,
	}
	for g, n := range l.Counts() {
		doc.Counts[g.String()] = n
	}
	if r.ops {
		rec := &canvas.Recorder{}
		canvas.Paint(rec, l)
		doc.Ops = make([]string, len(rec.Ops))
		for i, op := range rec.Ops {
			doc.Ops[i] = op.String()
		}
	}
	return doc
}
