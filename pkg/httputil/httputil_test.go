package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/matzehuels/glyphgrid/pkg/errors"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid scale", errors.New(errors.ErrCodeInvalidScale, "x"), http.StatusBadRequest},
		{"invalid event", errors.New(errors.ErrCodeInvalidEvent, "x"), http.StatusBadRequest},
		{"session not found", errors.New(errors.ErrCodeSessionNotFound, "x"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", errors.New(errors.ErrCodeFileNotFound, "x")), http.StatusNotFound},
		{"internal", errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New(errors.ErrCodeInvalidScale, "scale must be a positive number, got %v", 0))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Code != errors.ErrCodeInvalidScale || body.Error != "scale must be a positive number, got 0" {
		t.Errorf("body = %+v", body)
	}
}

func TestWriteErrorHidesPlainErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("dial tcp 10.0.0.1:6379: refused"))

	var body ErrorBody
	json.NewDecoder(rec.Body).Decode(&body)
	if body.Code != errors.ErrCodeInternal || strings.Contains(body.Error, "10.0.0.1") {
		t.Errorf("body = %+v", body)
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Scale float64 `json:"scale"`
	}
	r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"scale": 2.5}`))
	if err := DecodeJSON(httptest.NewRecorder(), r, &v); err != nil || v.Scale != 2.5 {
		t.Fatalf("DecodeJSON = %v, scale %v", err, v.Scale)
	}

	r = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"zoom": 2}`))
	if err := DecodeJSON(httptest.NewRecorder(), r, &v); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown field err = %v, want INVALID_INPUT", err)
	}
}

func TestDecodeJSONTooLarge(t *testing.T) {
	var v struct {
		Scale float64 `json:"scale"`
	}
	body := `{"scale": 2` + strings.Repeat(" ", int(MaxBodyBytes)) + `}`
	r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	err := DecodeJSON(httptest.NewRecorder(), r, &v)
	if err == nil {
		t.Fatal("DecodeJSON accepted an oversized body")
	}
	if got := StatusCode(err); got != http.StatusRequestEntityTooLarge {
		t.Errorf("StatusCode = %d, want 413", got)
	}

	rec := httptest.NewRecorder()
	WriteError(rec, err)
	var out ErrorBody
	json.NewDecoder(rec.Body).Decode(&out)
	if rec.Code != http.StatusRequestEntityTooLarge || out.Code != errors.ErrCodeTooLarge {
		t.Errorf("WriteError = %d %+v", rec.Code, out)
	}
}

func TestQuery(t *testing.T) {
	v, _ := url.ParseQuery("columns=4&scale=1.5&hl_row=2&mono=true&formats=svg,%20png,&empty=")
	q := NewQuery(v)

	if got := q.Int("columns", 10); got != 4 {
		t.Errorf("columns = %d", got)
	}
	if got := q.Int("rows", 7); got != 7 {
		t.Errorf("rows default = %d", got)
	}
	if got := q.Float("scale", 1); got != 1.5 {
		t.Errorf("scale = %v", got)
	}
	if p := q.IntPtr("hl_row"); p == nil || *p != 2 {
		t.Errorf("hl_row = %v", p)
	}
	if p := q.IntPtr("hl_col"); p != nil {
		t.Errorf("hl_col = %v, want nil", *p)
	}
	if !q.Bool("mono", false) {
		t.Error("mono = false")
	}
	if got := q.List("formats"); len(got) != 2 || got[0] != "svg" || got[1] != "png" {
		t.Errorf("formats = %q", got)
	}
	if q.Has("empty") {
		t.Error("Has(empty) = true for an empty value")
	}
	if err := q.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestQueryErr(t *testing.T) {
	v, _ := url.ParseQuery("columns=four&scale=big")
	q := NewQuery(v)

	if got := q.Int("columns", 10); got != 10 {
		t.Errorf("columns = %d, want default", got)
	}
	q.Float("scale", 1)

	err := q.Err()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Err() = %v, want INVALID_INPUT", err)
	}
	if !strings.Contains(err.Error(), "columns") {
		t.Errorf("Err() = %v, want the first bad key", err)
	}
}
