package sink

import (
	"strings"
	"testing"

	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/interact"
)

var (
	strip      = grid.Config{Columns: 3, Rows: 1, CellWidth: 100, CellHeight: 100}
	fiveByFive = grid.Config{Columns: 5, Rows: 5, CellWidth: 10, CellHeight: 10}
)

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(grid.Compute(strip, nil, nil, 1)))

	wants := []string{
		`viewBox="0 0 300 100" width="300" height="100"`,
		`<rect class="background" width="100%" height="100%" fill="#ffffff"/>`,
		`<polygon class="glyph start" points="30,100 50,100 40,80" fill="#333333"/>`,
		`<circle cx="130" cy="50" r="10"/>`,
		`<circle cx="130" cy="50" r="5.5"/>`,
		`<rect class="glyph end" x="237" y="30" width="45" height="45" rx="9" fill="#333333"/>`,
		`<rect class="cell" x="200" y="0" width="100" height="100" fill="none" stroke="#c8c8c8" stroke-width="1"/>`,
		`transform="translate(0 0)"`,
	}
	for _, want := range wants {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %s", want)
		}
	}
	if n := strings.Count(svg, `class="cell"`); n != 3 {
		t.Errorf("cell borders = %d, want 3", n)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not closed")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	l := grid.Compute(strip, nil, nil, 1)
	svg := string(RenderSVG(l,
		WithPalette(Mono),
		WithPixelRatio(2),
		WithTransform(interact.ViewTransform{Scale: 3, OffsetX: 12.5, OffsetY: -3}),
	))

	if !strings.Contains(svg, `viewBox="0 0 300 100" width="600" height="200"`) {
		t.Error("pixel ratio not applied to width and height")
	}
	if strings.Contains(svg, `class="background"`) {
		t.Error("mono palette should leave the background transparent")
	}
	if !strings.Contains(svg, `transform="translate(12.5 -3)"`) {
		t.Error("offset not applied")
	}
}

func TestRenderSVGMulti(t *testing.T) {
	svg := string(RenderSVG(grid.Compute(fiveByFive, nil, nil, 1)))

	if n := strings.Count(svg, `class="glyph multi"`); n != 1 {
		t.Fatalf("multi groups = %d, want 1", n)
	}
	start := strings.Index(svg, `class="glyph multi"`)
	end := start + strings.Index(svg[start:], "    </g>\n")
	group := svg[start:end]
	if !strings.Contains(group, Light.Accent) {
		t.Errorf("multi cluster not drawn in accent colour:\n%s", group)
	}
	if strings.Contains(group, Light.Glyph) {
		t.Errorf("multi cluster uses glyph colour:\n%s", group)
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		10:      "10",
		2.5:     "2.5",
		87.4:    "87.4",
		1.0 / 3: "0.33",
		-0.001:  "0",
		-4.25:   "-4.25",
	}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}
