package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/interact"
	"github.com/matzehuels/glyphgrid/pkg/render/canvas"
)

const (
	roundRectRadius = 0.2  // corner radius of the end glyph, × size
	ringInner       = 0.55 // inner ring radius, × outer radius
	ringStroke      = 0.18 // ring line width, × outer radius
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette   Palette
	ratio     float64
	transform interact.ViewTransform
}

// WithPalette sets the colours used for every glyph and border.
func WithPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithPixelRatio sets the device pixel ratio. The viewBox stays in logical
// units; the width and height attributes are multiplied by ratio.
func WithPixelRatio(ratio float64) SVGOption { return func(r *svgRenderer) { r.ratio = ratio } }

// WithTransform applies the view offset as a translation of the content.
// The scale of t is not applied here: it is already part of the layout.
func WithTransform(t interact.ViewTransform) SVGOption {
	return func(r *svgRenderer) { r.transform = t }
}

// RenderSVG paints l onto a fresh [SVGSurface] and returns the document.
func RenderSVG(l grid.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{palette: Light, ratio: 1}
	for _, opt := range opts {
		opt(&r)
	}
	s := NewSVGSurface(r.palette, r.ratio)
	s.SetOffset(r.transform.OffsetX, r.transform.OffsetY)
	canvas.Paint(s, l)
	return s.Bytes()
}

// SVGSurface is a [canvas.Surface] that builds an SVG document in memory.
type SVGSurface struct {
	palette          Palette
	ratio            float64
	width, height    float64
	offsetX, offsetY float64
	body             bytes.Buffer
}

// NewSVGSurface returns an empty surface. A ratio <= 0 is treated as 1.
func NewSVGSurface(p Palette, ratio float64) *SVGSurface {
	if ratio <= 0 {
		ratio = 1
	}
	return &SVGSurface{palette: p, ratio: ratio}
}

// SetOffset translates all content drawn on the surface.
func (s *SVGSurface) SetOffset(x, y float64) { s.offsetX, s.offsetY = x, y }

func (s *SVGSurface) Resize(width, height float64) {
	s.width, s.height = width, height
}

func (s *SVGSurface) Clear() {
	s.body.Reset()
}

func (s *SVGSurface) Triangle(x, y, side float64) {
	fmt.Fprintf(&s.body, `    <polygon class="glyph start" points="%s,%s %s,%s %s,%s" fill="%s"/>`+"\n",
		num(x), num(y+side), num(x+side), num(y+side), num(x+side/2), num(y), s.palette.Glyph)
}

func (s *SVGSurface) RoundRect(x, y, size float64) {
	fmt.Fprintf(&s.body, `    <rect class="glyph end" x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"/>`+"\n",
		num(x), num(y), num(size), num(size), num(size*roundRectRadius), s.palette.Glyph)
}

func (s *SVGSurface) Circle(x, y, r float64) {
	fmt.Fprintf(&s.body, `    <circle class="glyph dot" cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
		num(x), num(y), num(r), s.palette.Glyph)
}

func (s *SVGSurface) Ring(x, y, r float64) {
	fmt.Fprintf(&s.body, `    <g class="glyph ring" fill="none" stroke="%s" stroke-width="%s">`+"\n",
		s.palette.Glyph, num(r*ringStroke))
	fmt.Fprintf(&s.body, `      <circle cx="%s" cy="%s" r="%s"/>`+"\n", num(x), num(y), num(r))
	fmt.Fprintf(&s.body, `      <circle cx="%s" cy="%s" r="%s"/>`+"\n", num(x), num(y), num(r*ringInner))
	s.body.WriteString("    </g>\n")
}

func (s *SVGSurface) MultiSymbol(x, y, w, h float64) {
	fmt.Fprintf(&s.body, `    <g class="glyph multi" data-x="%s" data-y="%s">`+"\n", num(x), num(y))
	glyph := s.palette.Glyph
	s.palette.Glyph = s.palette.Accent
	canvas.DrawCluster(s, x, y, w, h)
	s.palette.Glyph = glyph
	s.body.WriteString("    </g>\n")
}

func (s *SVGSurface) StrokeRect(x, y, w, h float64) {
	fmt.Fprintf(&s.body, `    <rect class="cell" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		num(x), num(y), num(w), num(h), s.palette.Border, num(canvas.BorderWidth))
}

// Bytes returns the complete SVG document.
func (s *SVGSurface) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(s.width), num(s.height), num(s.width*s.ratio), num(s.height*s.ratio))
	if s.palette.Background != "" {
		fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", s.palette.Background)
	}
	fmt.Fprintf(&buf, `  <g class="grid" transform="translate(%s %s)">`+"\n", num(s.offsetX), num(s.offsetY))
	buf.Write(s.body.Bytes())
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

var _ canvas.Surface = (*SVGSurface)(nil)
