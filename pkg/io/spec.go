package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
)

// Format is a grid file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Spec is the content of a grid file.
type Spec struct {
	grid.Config
	Scale     float64      `json:"scale,omitempty" toml:"scale,omitempty"`
	Empty     *grid.Region `json:"empty,omitempty" toml:"empty"`
	Highlight *grid.Cell   `json:"highlight,omitempty" toml:"highlight"`
}

// EffectiveScale returns Scale, or 1 when it is unset.
func (s Spec) EffectiveScale() float64 {
	if s.Scale == 0 {
		return 1
	}
	return s.Scale
}

// Validate checks the grid shape and the scale. Region and highlight are
// never rejected; the layout engine clamps them.
func (s Spec) Validate() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	return grid.ValidateScale(s.EffectiveScale())
}

// Layout computes the layout the spec describes.
func (s Spec) Layout() grid.Layout {
	return grid.Compute(s.Config, s.Empty, s.Highlight, s.EffectiveScale())
}

// FormatFromPath picks the grid file format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown grid file extension: %q (use .toml or .json)", filepath.Ext(path))
}

// ReadSpec decodes and validates a grid file from r.
// ReadSpec does not close r.
func ReadSpec(r io.Reader, f Format) (Spec, error) {
	var s Spec
	switch f {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&s)
		if err != nil {
			return Spec{}, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode toml")
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return Spec{}, errors.New(errors.ErrCodeInvalidSpec, "unknown key %q", keys[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return Spec{}, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode json")
		}
	default:
		return Spec{}, errors.New(errors.ErrCodeInvalidFormat, "unknown grid file format: %q", f)
	}

	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// ReadSpecFile reads the grid file at path, choosing the format from its
// extension.
func ReadSpecFile(path string) (Spec, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Spec{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Spec{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "grid file %s", path)
		}
		return Spec{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	s, err := ReadSpec(file, f)
	if err != nil {
		return Spec{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteSpec encodes s to w.
func WriteSpec(w io.Writer, s Spec, f Format) error {
	switch f {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown grid file format: %q", f)
}
