package io

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/render/sink"
)

func TestExportImportLayout(t *testing.T) {
	l := grid.Compute(grid.Config{Columns: 6, Rows: 4, CellWidth: 20, CellHeight: 20},
		&grid.Region{ToRow: grid.Int(3)}, &grid.Cell{Row: grid.Int(2), Col: grid.Int(4)}, 1.25)
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := ExportLayout(l, path, sink.WithJSONOps()); err != nil {
		t.Fatalf("ExportLayout() error: %v", err)
	}
	doc, err := ImportLayout(path)
	if err != nil {
		t.Fatalf("ImportLayout() error: %v", err)
	}

	if doc.Region != l.Region || doc.Highlight != l.Highlight {
		t.Errorf("region/highlight = %+v/%+v, want %+v/%+v", doc.Region, doc.Highlight, l.Region, l.Highlight)
	}
	if len(doc.Cells) != len(l.Cells) {
		t.Fatalf("cells = %d, want %d", len(doc.Cells), len(l.Cells))
	}
	for i := range l.Cells {
		if doc.Cells[i] != l.Cells[i] {
			t.Errorf("cell %d = %+v, want %+v", i, doc.Cells[i], l.Cells[i])
		}
	}
	if len(doc.Ops) == 0 {
		t.Error("ops missing")
	}
}

func TestImportLayoutMissing(t *testing.T) {
	if _, err := ImportLayout(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ImportLayout() of a missing file succeeded")
	}
}
