package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
)

const specTOML = `
columns     = 8
rows        = 6
cell_width  = 40
cell_height = 30
scale       = 1.5

[empty]
from_row = 1
to_row   = 4

[highlight]
col = 3
`

func TestReadSpecTOML(t *testing.T) {
	s, err := ReadSpec(strings.NewReader(specTOML), FormatTOML)
	if err != nil {
		t.Fatalf("ReadSpec() error: %v", err)
	}

	if want := (grid.Config{Columns: 8, Rows: 6, CellWidth: 40, CellHeight: 30}); s.Config != want {
		t.Errorf("Config = %+v, want %+v", s.Config, want)
	}
	if s.Scale != 1.5 {
		t.Errorf("Scale = %v, want 1.5", s.Scale)
	}
	if s.Empty == nil || *s.Empty.FromRow != 1 || *s.Empty.ToRow != 4 || s.Empty.FromCol != nil {
		t.Errorf("Empty = %+v", s.Empty)
	}
	if s.Highlight == nil || s.Highlight.Row != nil || *s.Highlight.Col != 3 {
		t.Errorf("Highlight = %+v", s.Highlight)
	}

	l := s.Layout()
	if want := (grid.Bounds{FromRow: 1, ToRow: 4, FromCol: 1, ToCol: 7}); l.Region != want {
		t.Errorf("Region = %+v, want %+v", l.Region, want)
	}
	if want := (grid.Position{Row: 1, Col: 3}); l.Highlight != want {
		t.Errorf("Highlight = %+v, want %+v", l.Highlight, want)
	}
}

func TestReadSpecJSON(t *testing.T) {
	in := `{"columns": 5, "rows": 5, "cell_width": 10, "cell_height": 10, "highlight": {"row": 1, "col": 2}}`
	s, err := ReadSpec(strings.NewReader(in), FormatJSON)
	if err != nil {
		t.Fatalf("ReadSpec() error: %v", err)
	}
	if s.EffectiveScale() != 1 {
		t.Errorf("EffectiveScale() = %v, want 1", s.EffectiveScale())
	}
	if s.Empty != nil {
		t.Errorf("Empty = %+v, want nil", s.Empty)
	}
	if got := s.Layout().Highlight; got != (grid.Position{Row: 1, Col: 2}) {
		t.Errorf("Highlight = %+v", got)
	}
}

func TestReadSpecErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		format Format
		code   errors.Code
	}{
		{"unknown toml key", "columns = 3\nrows = 3\ncell_width = 1\ncell_height = 1\ncolour = 'red'\n", FormatTOML, errors.ErrCodeInvalidSpec},
		{"unknown json key", `{"columns": 3, "rows": 3, "cell_width": 1, "cell_height": 1, "colour": "red"}`, FormatJSON, errors.ErrCodeInvalidSpec},
		{"malformed toml", "columns = = 3", FormatTOML, errors.ErrCodeInvalidSpec},
		{"malformed json", `{"columns": }`, FormatJSON, errors.ErrCodeInvalidSpec},
		{"no rows", "columns = 3\nrows = 0\ncell_width = 1\ncell_height = 1\n", FormatTOML, errors.ErrCodeInvalidConfig},
		{"negative scale", `{"columns": 3, "rows": 3, "cell_width": 1, "cell_height": 1, "scale": -2}`, FormatJSON, errors.ErrCodeInvalidScale},
		{"unknown format", "", Format("yaml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSpec(strings.NewReader(tt.in), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadSpec() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadSpecFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.toml")
	if err := os.WriteFile(path, []byte(specTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSpecFile(path); err != nil {
		t.Errorf("ReadSpecFile() error: %v", err)
	}

	if _, err := ReadSpecFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ReadSpecFile(filepath.Join(dir, "grid.yaml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad extension error = %v, want INVALID_FORMAT", err)
	}
}

func TestWriteSpecRoundTrip(t *testing.T) {
	s := Spec{
		Config:    grid.Config{Columns: 9, Rows: 4, CellWidth: 12, CellHeight: 8},
		Scale:     2,
		Empty:     &grid.Region{FromCol: grid.Int(2), ToCol: grid.Int(6)},
		Highlight: &grid.Cell{Row: grid.Int(1), Col: grid.Int(4)},
	}
	for _, f := range []Format{FormatTOML, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteSpec(&buf, s, f); err != nil {
				t.Fatalf("WriteSpec() error: %v", err)
			}
			got, err := ReadSpec(&buf, f)
			if err != nil {
				t.Fatalf("ReadSpec() error: %v", err)
			}
			if !reflect.DeepEqual(got, s) {
				t.Errorf("round trip = %+v, want %+v", got, s)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{"a.toml": FormatTOML, "dir/B.JSON": FormatJSON}
	for path, want := range tests {
		if got, err := FormatFromPath(path); err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v", path, got, err)
		}
	}
}

func TestExampleGrids(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "grids", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no example grids found")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := ReadSpecFile(path)
			if err != nil {
				t.Fatalf("ReadSpecFile: %v", err)
			}
			l := s.Layout()
			if got, want := len(l.Cells), s.Columns*s.Rows; got != want {
				t.Errorf("cells = %d, want %d", got, want)
			}
		})
	}
}

func TestExampleGridBoard(t *testing.T) {
	s, err := ReadSpecFile(filepath.Join("..", "..", "examples", "grids", "board.toml"))
	if err != nil {
		t.Fatal(err)
	}
	l := s.Layout()
	if l.Scale != 2 || l.Width != 12*32*2 {
		t.Errorf("scale = %v, width = %v", l.Scale, l.Width)
	}
	// The highlight lies outside the region and is pulled to its first cell.
	if want := (grid.Position{Row: 1, Col: 4}); l.Highlight != want {
		t.Errorf("highlight = %+v, want %+v", l.Highlight, want)
	}
}
