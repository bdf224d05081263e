package grid

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/glyphgrid/pkg/errors"
)

var fiveByFive = Config{Columns: 5, Rows: 5, CellWidth: 10, CellHeight: 10}

func TestComputeEmitsEveryCellOnce(t *testing.T) {
	tests := []Config{
		{Columns: 1, Rows: 1, CellWidth: 1, CellHeight: 1},
		{Columns: 2, Rows: 3, CellWidth: 4, CellHeight: 2},
		{Columns: 3, Rows: 1, CellWidth: 10, CellHeight: 10},
		{Columns: 7, Rows: 4, CellWidth: 12, CellHeight: 8},
		fiveByFive,
	}

	for _, cfg := range tests {
		l := Compute(cfg, nil, nil, 1)
		if len(l.Cells) != cfg.Rows*cfg.Columns {
			t.Errorf("%+v: got %d cells, want %d", cfg, len(l.Cells), cfg.Rows*cfg.Columns)
			continue
		}
		seen := make(map[[2]int]bool)
		for i, c := range l.Cells {
			key := [2]int{c.Row, c.Col}
			if seen[key] {
				t.Errorf("%+v: duplicate cell %v", cfg, key)
			}
			seen[key] = true
			if c.Row*cfg.Columns+c.Col != i {
				t.Errorf("%+v: cell %d is (%d,%d), not row-major", cfg, i, c.Row, c.Col)
			}
		}
	}
}

func TestComputeGeometry(t *testing.T) {
	l := Compute(Config{Columns: 4, Rows: 3, CellWidth: 10, CellHeight: 20}, nil, nil, 1.5)

	if l.Width != 60 || l.Height != 90 {
		t.Errorf("size = %vx%v, want 60x90", l.Width, l.Height)
	}

	c, ok := l.At(2, 3)
	if !ok {
		t.Fatal("At(2,3) not found")
	}
	if c.X != 45 || c.Y != 60 || c.W != 15 || c.H != 30 {
		t.Errorf("cell rect = (%v,%v,%v,%v), want (45,60,15,30)", c.X, c.Y, c.W, c.H)
	}
}

func TestComputeFixedColumns(t *testing.T) {
	regions := []*Region{
		nil,
		{FromCol: Int(0), ToCol: Int(5)},
		{FromRow: Int(0), ToRow: Int(5), FromCol: Int(-3), ToCol: Int(99)},
	}
	highlights := []*Cell{nil, {Row: Int(0), Col: Int(0)}, {Row: Int(2), Col: Int(4)}}

	for _, r := range regions {
		for _, h := range highlights {
			l := Compute(fiveByFive, r, h, 1)
			for _, c := range l.Cells {
				switch c.Col {
				case 0:
					if c.Glyph != Start {
						t.Errorf("(%d,%d) = %v, want start", c.Row, c.Col, c.Glyph)
					}
				case fiveByFive.Columns - 1:
					if c.Glyph != End {
						t.Errorf("(%d,%d) = %v, want end", c.Row, c.Col, c.Glyph)
					}
				}
			}
		}
	}
}

func TestComputeDefaults(t *testing.T) {
	l := Compute(fiveByFive, nil, nil, 1)

	if want := (Bounds{FromRow: 0, ToRow: 2, FromCol: 1, ToCol: 4}); l.Region != want {
		t.Errorf("Region = %+v, want %+v", l.Region, want)
	}
	if want := (Position{Row: 0, Col: 1}); l.Highlight != want {
		t.Errorf("Highlight = %+v, want %+v", l.Highlight, want)
	}

	tests := []struct {
		row, col int
		want     Glyph
	}{
		{0, 1, Multi},
		{1, 1, None},
		{1, 2, None},
		{1, 3, None},
		{0, 0, Start},
		{0, 4, End},
		{3, 2, Dot},
		{3, 3, Ring},
	}
	for _, tt := range tests {
		c, _ := l.At(tt.row, tt.col)
		if c.Glyph != tt.want {
			t.Errorf("(%d,%d) = %v, want %v", tt.row, tt.col, c.Glyph, tt.want)
		}
	}
}

func TestComputeGlyphAnchors(t *testing.T) {
	l := Compute(Config{Columns: 5, Rows: 5, CellWidth: 20, CellHeight: 10}, nil, nil, 1)

	tests := []struct {
		row, col         int
		anchorX, anchorY float64
		size             float64
		glyph            Glyph
	}{
		{4, 0, 6, 48, 2, Start},
		{4, 4, 87.4, 43, 4.5, End},
		{4, 2, 46, 45, 0.6, Dot},
		{4, 3, 66, 45, 1, Ring},
		{0, 1, 20, 0, 0, Multi},
	}
	for _, tt := range tests {
		c, _ := l.At(tt.row, tt.col)
		if c.Glyph != tt.glyph {
			t.Fatalf("(%d,%d) = %v, want %v", tt.row, tt.col, c.Glyph, tt.glyph)
		}
		if !near(c.AnchorX, tt.anchorX) || !near(c.AnchorY, tt.anchorY) || !near(c.Size, tt.size) {
			t.Errorf("(%d,%d) anchor=(%v,%v) size=%v, want (%v,%v) size=%v",
				tt.row, tt.col, c.AnchorX, c.AnchorY, c.Size, tt.anchorX, tt.anchorY, tt.size)
		}
	}
}

func TestComputeRegionDisabled(t *testing.T) {
	tests := []Config{
		{Columns: 1, Rows: 4, CellWidth: 10, CellHeight: 10},
		{Columns: 2, Rows: 4, CellWidth: 10, CellHeight: 10},
	}
	regions := []*Region{nil, {FromRow: Int(0), ToRow: Int(4), FromCol: Int(0), ToCol: Int(2)}}
	highlights := []*Cell{nil, {Row: Int(1), Col: Int(1)}}

	for _, cfg := range tests {
		if RegionActive(cfg) {
			t.Errorf("RegionActive(%+v) = true", cfg)
		}
		for _, r := range regions {
			for _, h := range highlights {
				if n := Compute(cfg, r, h, 1).Counts()[Multi]; n != 0 {
					t.Errorf("%+v: %d multi glyphs, want 0", cfg, n)
				}
			}
		}
	}

	// Three columns by zero rows: no cells at all.
	if l := Compute(Config{Columns: 3, Rows: 0, CellWidth: 1, CellHeight: 1}, nil, nil, 1); len(l.Cells) != 0 {
		t.Errorf("zero rows produced %d cells", len(l.Cells))
	}
}

func TestComputeSingleColumn(t *testing.T) {
	l := Compute(Config{Columns: 1, Rows: 3, CellWidth: 5, CellHeight: 5}, nil, nil, 1)
	for _, c := range l.Cells {
		if c.Glyph != Start {
			t.Errorf("(%d,%d) = %v, want start", c.Row, c.Col, c.Glyph)
		}
	}
}

func TestComputeCustomRegion(t *testing.T) {
	cfg := Config{Columns: 8, Rows: 6, CellWidth: 10, CellHeight: 10}
	l := Compute(cfg,
		&Region{FromRow: Int(2), ToRow: Int(5), FromCol: Int(2), ToCol: Int(6)},
		&Cell{Row: Int(3), Col: Int(4)}, 1)

	counts := l.Counts()
	if counts[Multi] != 1 {
		t.Errorf("multi count = %d, want 1", counts[Multi])
	}
	if counts[None] != 3*4-1 {
		t.Errorf("blank count = %d, want %d", counts[None], 3*4-1)
	}
	if c, _ := l.At(3, 4); c.Glyph != Multi {
		t.Errorf("(3,4) = %v, want multi", c.Glyph)
	}
	if c, _ := l.At(1, 2); c.Glyph != Dot {
		t.Errorf("(1,2) = %v, want dot", c.Glyph)
	}
}

func TestComputeRegionLastRow(t *testing.T) {
	tests := []struct {
		name      string
		region    *Region
		highlight *Cell
		multi     [2]int
		blank     [][2]int
	}{
		{"whole grid", &Region{FromRow: Int(0), ToRow: Int(5)}, nil,
			[2]int{0, 1}, [][2]int{{4, 1}, {4, 2}, {4, 3}}},
		{"last row only", &Region{FromRow: Int(4), ToRow: Int(5)}, &Cell{Row: Int(4), Col: Int(1)},
			[2]int{4, 1}, [][2]int{{4, 2}, {4, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Compute(fiveByFive, tt.region, tt.highlight, 1)
			if c, _ := l.At(tt.multi[0], tt.multi[1]); c.Glyph != Multi {
				t.Errorf("%v = %v, want multi", tt.multi, c.Glyph)
			}
			for _, p := range tt.blank {
				if c, _ := l.At(p[0], p[1]); c.Glyph != None {
					t.Errorf("%v = %v, want none", p, c.Glyph)
				}
			}
		})
	}
}

func TestComputeRegionOutsideRows(t *testing.T) {
	l := Compute(fiveByFive, &Region{FromRow: Int(7), ToRow: Int(9)}, nil, 1)

	counts := l.Counts()
	if counts[None] != 0 || counts[Multi] != 0 {
		t.Errorf("counts = %v, want no blank or multi cells", counts)
	}
	if c, _ := l.At(0, 2); c.Glyph != Dot {
		t.Errorf("(0,2) = %v, want dot", c.Glyph)
	}
}

func TestComputeDeterministic(t *testing.T) {
	r := &Region{FromRow: Int(1), ToCol: Int(3)}
	h := &Cell{Col: Int(2)}
	a, err := json.Marshal(Compute(fiveByFive, r, h, 2))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(Compute(fiveByFive, r, h, 2))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("identical inputs produced different layouts")
	}
}

func TestComputeDoesNotMutateInputs(t *testing.T) {
	r := &Region{FromRow: Int(4), ToRow: Int(1), FromCol: Int(9), ToCol: Int(2)}
	h := &Cell{Row: Int(-1), Col: Int(10)}
	before := []int{*r.FromRow, *r.ToRow, *r.FromCol, *r.ToCol, *h.Row, *h.Col}

	Compute(fiveByFive, r, h, 1)

	after := []int{*r.FromRow, *r.ToRow, *r.FromCol, *r.ToCol, *h.Row, *h.Col}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("inputs mutated: %v -> %v", before, after)
	}
}

func TestAtOutOfRange(t *testing.T) {
	l := Compute(fiveByFive, nil, nil, 1)
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		if _, ok := l.At(rc[0], rc[1]); ok {
			t.Errorf("At(%d,%d) ok = true", rc[0], rc[1])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid", fiveByFive, true},
		{"no columns", Config{Columns: 0, Rows: 1, CellWidth: 1, CellHeight: 1}, false},
		{"no rows", Config{Columns: 1, Rows: 0, CellWidth: 1, CellHeight: 1}, false},
		{"zero width", Config{Columns: 1, Rows: 1, CellWidth: 0, CellHeight: 1}, false},
		{"negative height", Config{Columns: 1, Rows: 1, CellWidth: 1, CellHeight: -2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}

	if err := ValidateScale(0); !errors.Is(err, errors.ErrCodeInvalidScale) {
		t.Errorf("ValidateScale(0) = %v", err)
	}
	if err := ValidateScale(0.5); err != nil {
		t.Errorf("ValidateScale(0.5) = %v", err)
	}
}

func TestGlyphText(t *testing.T) {
	for _, g := range Glyphs {
		b, err := g.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", g, err)
		}
		var back Glyph
		if err := back.UnmarshalText(b); err != nil || back != g {
			t.Errorf("UnmarshalText(%q) = %v, %v", b, back, err)
		}
	}
	var g Glyph
	if err := g.UnmarshalText([]byte("hexagon")); err == nil {
		t.Error("UnmarshalText accepted unknown name")
	}
	if s := Glyph(42).String(); s != "glyph(42)" {
		t.Errorf("String() = %q", s)
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
