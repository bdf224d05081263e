package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/render/sink"
)

// WriteLayout encodes l as a JSON layout document and writes it to w.
// opts are passed through to [sink.RenderJSON].
func WriteLayout(w io.Writer, l grid.Layout, opts ...sink.JSONOption) error {
	data, err := sink.RenderJSON(l, opts...)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportLayout writes l to a JSON file at path.
// This is a convenience wrapper around [WriteLayout] for file-based output.
func ExportLayout(l grid.Layout, path string, opts ...sink.JSONOption) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(f, l, opts...)
}

// ReadLayout decodes a layout document from r.
// ReadLayout does not close r.
func ReadLayout(r io.Reader) (sink.Document, error) {
	var doc sink.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return sink.Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// ImportLayout reads a layout document from the JSON file at path.
func ImportLayout(path string) (sink.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return sink.Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}
