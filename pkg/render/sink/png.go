package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/interact"
	"github.com/matzehuels/glyphgrid/pkg/render/canvas"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette   Palette
	ratio     float64
	transform interact.ViewTransform
}

// WithPNGPalette sets the colours used for every glyph and border.
func WithPNGPalette(p Palette) PNGOption { return func(r *pngRenderer) { r.palette = p } }

// WithPNGPixelRatio sets the device pixel ratio (default 2 for 2x resolution).
// The backing image is ratio times the logical size and all drawing is
// scaled to match.
func WithPNGPixelRatio(ratio float64) PNGOption { return func(r *pngRenderer) { r.ratio = ratio } }

// WithPNGTransform applies the view offset as a translation of the content.
func WithPNGTransform(t interact.ViewTransform) PNGOption {
	return func(r *pngRenderer) { r.transform = t }
}

// RenderPNG rasterises the layout.
func RenderPNG(l grid.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{palette: Light, ratio: 2}
	for _, opt := range opts {
		opt(&r)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot rasterise an empty layout")
	}
	s := NewPNGSurface(r.palette, r.ratio)
	s.SetOffset(r.transform.OffsetX, r.transform.OffsetY)
	canvas.Paint(s, l)
	return s.Bytes()
}

// PNGSurface is a [canvas.Surface] backed by a [gg.Context].
// The context is allocated on Resize; drawing before that is a no-op.
// Paths are scaled by the pixel ratio through the context matrix, but gg
// strokes in device pixels, so line widths are scaled by hand.
type PNGSurface struct {
	palette          Palette
	ratio            float64
	offsetX, offsetY float64
	dc               *gg.Context
}

// NewPNGSurface returns a surface with no backing image yet.
// A ratio <= 0 is treated as 1.
func NewPNGSurface(p Palette, ratio float64) *PNGSurface {
	if ratio <= 0 {
		ratio = 1
	}
	return &PNGSurface{palette: p, ratio: ratio}
}

// SetOffset translates all content drawn after the next Resize.
func (s *PNGSurface) SetOffset(x, y float64) { s.offsetX, s.offsetY = x, y }

// Context returns the backing context, or nil before the first Resize.
func (s *PNGSurface) Context() *gg.Context { return s.dc }

func (s *PNGSurface) Resize(width, height float64) {
	w := max(1, int(math.Ceil(width*s.ratio)))
	h := max(1, int(math.Ceil(height*s.ratio)))
	s.dc = gg.NewContext(w, h)
	s.dc.Scale(s.ratio, s.ratio)
	s.dc.Translate(s.offsetX, s.offsetY)
}

func (s *PNGSurface) Clear() {
	if s.dc == nil {
		return
	}
	if s.palette.Background == "" {
		s.dc.SetRGBA(0, 0, 0, 0)
	} else {
		s.dc.SetHexColor(s.palette.Background)
	}
	s.dc.Clear()
}

func (s *PNGSurface) Triangle(x, y, side float64) {
	if s.dc == nil {
		return
	}
	s.dc.MoveTo(x, y+side)
	s.dc.LineTo(x+side, y+side)
	s.dc.LineTo(x+side/2, y)
	s.dc.ClosePath()
	s.fill()
}

func (s *PNGSurface) RoundRect(x, y, size float64) {
	if s.dc == nil {
		return
	}
	s.dc.DrawRoundedRectangle(x, y, size, size, size*roundRectRadius)
	s.fill()
}

func (s *PNGSurface) Circle(x, y, r float64) {
	if s.dc == nil {
		return
	}
	s.dc.DrawCircle(x, y, r)
	s.fill()
}

func (s *PNGSurface) Ring(x, y, r float64) {
	if s.dc == nil {
		return
	}
	s.dc.SetHexColor(s.palette.Glyph)
	s.dc.SetLineWidth(r * ringStroke * s.ratio)
	s.dc.DrawCircle(x, y, r)
	s.dc.Stroke()
	s.dc.DrawCircle(x, y, r*ringInner)
	s.dc.Stroke()
}

func (s *PNGSurface) MultiSymbol(x, y, w, h float64) {
	if s.dc == nil {
		return
	}
	glyph := s.palette.Glyph
	s.palette.Glyph = s.palette.Accent
	canvas.DrawCluster(s, x, y, w, h)
	s.palette.Glyph = glyph
}

func (s *PNGSurface) StrokeRect(x, y, w, h float64) {
	if s.dc == nil {
		return
	}
	s.dc.SetHexColor(s.palette.Border)
	s.dc.SetLineWidth(canvas.BorderWidth * s.ratio)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Stroke()
}

func (s *PNGSurface) fill() {
	s.dc.SetHexColor(s.palette.Glyph)
	s.dc.Fill()
}

// Bytes encodes the image as PNG.
func (s *PNGSurface) Bytes() ([]byte, error) {
	if s.dc == nil {
		return nil, errors.New(errors.ErrCodeInternal, "png surface was never sized")
	}
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

var _ canvas.Surface = (*PNGSurface)(nil)
