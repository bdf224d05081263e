package server

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/glyphgrid/pkg/buildinfo"
	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/httputil"
	gridio "github.com/matzehuels/glyphgrid/pkg/io"
	"github.com/matzehuels/glyphgrid/pkg/observability"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

// handleRender renders a grid described entirely by query parameters.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := httputil.NewQuery(r.URL.Query())
	opts := gridOptions(q)
	renderOptions(q, &opts)
	if err := q.Err(); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.execute(w, r, opts)
}

// handleSpecRender renders a grid file from the spec directory. Query
// parameters may override its scale.
func (s *Server) handleSpecRender(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidatePath(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	if filepath.Ext(name) == "" {
		name += ".toml"
	}
	spec, err := gridio.ReadSpecFile(filepath.Join(s.specDir, name))
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		err = errors.New(errors.ErrCodeFileNotFound, "grid file %q not found", name)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := httputil.NewQuery(r.URL.Query())
	opts := pipeline.OptionsFromSpec(spec)
	opts.Scale = q.Float("scale", opts.Scale)
	renderOptions(q, &opts)
	if err := q.Err(); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.execute(w, r, opts)
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	format := chi.URLParam(r, "format")
	if err := errors.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, format, result.Artifacts[format], result.CacheInfo.RenderHit)
}

func writeArtifact(w http.ResponseWriter, format string, data []byte, cached bool) {
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Cache", cacheHeader(cached))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// gridOptions reads the grid shape, region, highlight and scale.
func gridOptions(q *httputil.Query) pipeline.Options {
	opts := pipeline.Options{
		Config: grid.Config{
			Columns:    q.Int("columns", 0),
			Rows:       q.Int("rows", 0),
			CellWidth:  q.Float("cell_width", 0),
			CellHeight: q.Float("cell_height", 0),
		},
		Scale: q.Float("scale", pipeline.DefaultScale),
	}
	region := grid.Region{
		FromRow: q.IntPtr("from_row"),
		ToRow:   q.IntPtr("to_row"),
		FromCol: q.IntPtr("from_col"),
		ToCol:   q.IntPtr("to_col"),
	}
	if region != (grid.Region{}) {
		opts.Region = &region
	}
	hl := grid.Cell{Row: q.IntPtr("hl_row"), Col: q.IntPtr("hl_col")}
	if hl != (grid.Cell{}) {
		opts.Highlight = &hl
	}
	return opts
}

// renderOptions reads the settings that only affect the sinks.
func renderOptions(q *httputil.Query, opts *pipeline.Options) {
	opts.Theme = q.String("theme", opts.Theme)
	opts.PixelRatio = q.Float("ratio", opts.PixelRatio)
	opts.Ops = q.Bool("ops", opts.Ops)
	opts.Refresh = q.Bool("refresh", opts.Refresh)
}

// writeError writes err and logs it when it is not the client's fault.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	status := httputil.StatusCode(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	httputil.WriteError(w, err)
}
