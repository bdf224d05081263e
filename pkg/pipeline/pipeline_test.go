package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/interact"
	gridio "github.com/matzehuels/glyphgrid/pkg/io"
)

var fiveByFive = grid.Config{Columns: 5, Rows: 5, CellWidth: 10, CellHeight: 10}

// memCache is an in-memory Cache that counts operations.
type memCache struct {
	mu         sync.Mutex
	data       map[string][]byte
	gets, sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateAndSetDefaults(t *testing.T) {
	o := Options{Config: fiveByFive}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if o.Scale != DefaultScale || o.Theme != DefaultTheme || o.PixelRatio != DefaultPixelRatio {
		t.Errorf("defaults = scale %v, theme %q, ratio %v", o.Scale, o.Theme, o.PixelRatio)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad config", Options{Config: grid.Config{Columns: 0, Rows: 1, CellWidth: 1, CellHeight: 1}}, errors.ErrCodeInvalidConfig},
		{"bad scale", Options{Config: fiveByFive, Scale: -1}, errors.ErrCodeInvalidScale},
		{"bad format", Options{Config: fiveByFive, Formats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
		{"bad theme", Options{Config: fiveByFive, Theme: "neon"}, errors.ErrCodeInvalidInput},
		{"bad ratio", Options{Config: fiveByFive, PixelRatio: -2}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsFromSpec(t *testing.T) {
	s := gridio.Spec{Config: fiveByFive, Highlight: &grid.Cell{Col: grid.Int(2)}}
	o := OptionsFromSpec(s)
	if o.Scale != 1 || o.Config != fiveByFive || o.Highlight != s.Highlight {
		t.Errorf("OptionsFromSpec() = %+v", o)
	}
}

func TestExecuteAllFormats(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Config:  fiveByFive,
		Formats: []string{FormatSVG, FormatPNG, FormatJSON, FormatText},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.Stats.Cells != 25 {
		t.Errorf("Cells = %d, want 25", res.Stats.Cells)
	}
	if len(res.LayoutHash) != 64 {
		t.Errorf("LayoutHash = %q", res.LayoutHash)
	}
	checks := map[string]func([]byte) bool{
		FormatSVG:  func(b []byte) bool { return bytes.HasPrefix(b, []byte("<svg")) },
		FormatPNG:  func(b []byte) bool { return bytes.HasPrefix(b, []byte("\x89PNG")) },
		FormatJSON: func(b []byte) bool { return bytes.Contains(b, []byte(`"counts"`)) },
		FormatText: func(b []byte) bool { return strings.HasPrefix(string(b), "+-----+") },
	}
	for format, ok := range checks {
		if !ok(res.Artifacts[format]) {
			t.Errorf("%s artifact malformed: %.40q", format, res.Artifacts[format])
		}
	}
	if res.CacheInfo.RenderHit {
		t.Error("NullCache should never hit")
	}
}

func TestExecuteCaches(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Config: fiveByFive, Formats: []string{FormatSVG, FormatText}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if c.sets != 2 {
		t.Errorf("sets after first run = %d, want 2", c.sets)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should be served from cache")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs from rendered SVG")
	}

	// A different offset is a different artifact.
	opts.Transform = interact.ViewTransform{Scale: 1, OffsetX: 5}
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("changed transform should miss the cache")
	}

	// Refresh skips reads but still writes.
	opts.Refresh = true
	sets := c.sets
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	if c.sets != sets+2 {
		t.Errorf("refresh wrote %d entries, want 2", c.sets-sets)
	}
}

func TestExecutePartialHit(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)

	if _, err := r.Execute(ctx, Options{Config: fiveByFive, Formats: []string{FormatSVG}}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Config: fiveByFive, Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("RenderHit with one format missing")
	}
	if len(res.CacheInfo.Hits) != 1 || res.CacheInfo.Hits[0] != FormatSVG {
		t.Errorf("Hits = %v, want [svg]", res.CacheInfo.Hits)
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(res.Artifacts))
	}
}

func TestRenderDeterministic(t *testing.T) {
	l := Layout(Options{Config: fiveByFive, Scale: 2})
	opts := Options{Formats: []string{FormatSVG, FormatJSON, FormatText, FormatPNG}, Theme: "dark", PixelRatio: 1}

	a, err := Render(context.Background(), l, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(context.Background(), l, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range opts.Formats {
		if !bytes.Equal(a[f], b[f]) {
			t.Errorf("%s output differs between runs", f)
		}
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := Layout(Options{Config: fiveByFive, Scale: 1})
	if _, err := Render(ctx, l, Options{Formats: []string{FormatSVG}, Theme: "light"}); err == nil {
		t.Error("Render with a cancelled context should fail")
	}
}

func TestRunnerRender(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	l := Layout(Options{Config: fiveByFive, Scale: 1.5})
	out, hit, err := r.RenderWithCacheInfo(context.Background(), l, Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("RenderWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("NullCache should never hit")
	}
	if !bytes.Contains(out[FormatJSON], []byte(`"scale": 1.5`)) {
		t.Errorf("JSON missing layout scale:\n%s", out[FormatJSON])
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{Theme: "dark", PixelRatio: 2, Ops: true, Transform: interact.ViewTransform{Scale: 1, OffsetX: 1}}
	if k := artifactKeyOpts(o, FormatText); k.Theme != "" || k.PixelRatio != 0 || k.Ops {
		t.Errorf("text key carries unused settings: %+v", k)
	}
	if k := artifactKeyOpts(o, FormatPNG); k.Theme != "dark" || k.PixelRatio != 2 || k.OffsetX != 1 {
		t.Errorf("png key = %+v", k)
	}
	if k := artifactKeyOpts(o, FormatJSON); !k.Ops {
		t.Errorf("json key = %+v", k)
	}
}
