package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/httputil"
	"github.com/matzehuels/glyphgrid/pkg/interact"
	gridio "github.com/matzehuels/glyphgrid/pkg/io"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
	"github.com/matzehuels/glyphgrid/pkg/session"
)

// scaleRequest is the body of PUT /sessions/{id}/scale.
type scaleRequest struct {
	Scale float64 `json:"scale"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	httputil.LimitBody(w, r)
	spec, err := gridio.ReadSpec(r.Body, gridio.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := pipeline.CheckSize(spec.Config, spec.EffectiveScale()); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess := session.New(spec, s.ttl)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Debug("session created", "id", sess.ID, "columns", spec.Columns, "rows", spec.Rows)
	httputil.WriteJSON(w, http.StatusCreated, sess.View())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sess.View())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var ev interact.Event
	if err := httputil.DecodeJSON(w, r, &ev); err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := sess.Apply(ev)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req scaleRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := checkScale(sess, req.Scale); err != nil {
		s.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sess.SetScale(req.Scale))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sess.Reset())
}

// handleSessionRender renders the session grid at the session scale, with
// the pan offset applied as a translation.
func (s *Server) handleSessionRender(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := chi.URLParam(r, "format")
	if err := errors.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	q := httputil.NewQuery(r.URL.Query())
	l, t := sess.Layout()
	opts := pipeline.Options{Formats: []string{format}, Transform: t}
	renderOptions(q, &opts)
	if err := q.Err(); err != nil {
		s.writeError(w, r, err)
		return
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, format, artifacts[format], hit)
}

// checkScale rejects a scale the session grid cannot be rendered at.
func checkScale(sess *session.Session, scale float64) error {
	if err := grid.ValidateScale(scale); err != nil {
		return err
	}
	return pipeline.CheckSize(sess.Spec.Config, scale)
}

// session looks up the session named in the URL and extends its lifetime.
func (s *Server) session(r *http.Request) (*session.Session, error) {
	id := chi.URLParam(r, "id")
	sess, err := s.store.Get(r.Context(), id)
	if err == session.ErrExpired {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s has expired", id)
	}
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	sess.Touch()
	return sess, nil
}
