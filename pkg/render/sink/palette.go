package sink

import (
	"slices"
	"strings"

	"github.com/matzehuels/glyphgrid/pkg/errors"
)

// Palette holds the colours a sink paints with, as #rrggbb strings.
// An empty Background leaves the surface transparent.
type Palette struct {
	Background string `json:"background,omitempty"`
	Border     string `json:"border"`
	Glyph      string `json:"glyph"`
	Accent     string `json:"accent"`
}

// Built-in palettes.
var (
	Light = Palette{Background: "#ffffff", Border: "#c8c8c8", Glyph: "#333333", Accent: "#d9480f"}
	Dark  = Palette{Background: "#1e1e1e", Border: "#4a4a4a", Glyph: "#e0e0e0", Accent: "#ffa94d"}
	Mono  = Palette{Border: "#000000", Glyph: "#000000", Accent: "#000000"}
)

var themes = map[string]Palette{"light": Light, "dark": Dark, "mono": Mono}

// Themes returns the names accepted by [Theme], sorted.
func Themes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Theme looks up a built-in palette by name.
func Theme(name string) (Palette, error) {
	p, ok := themes[name]
	if !ok {
		return Palette{}, errors.New(errors.ErrCodeInvalidInput, "invalid theme: %q (must be one of %s)", name, strings.Join(Themes(), ", "))
	}
	return p, nil
}
