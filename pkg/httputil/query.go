package httputil

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/glyphgrid/pkg/errors"
)

// Query reads typed parameters from a URL query and remembers the first
// malformed one.
type Query struct {
	values url.Values
	err    error
}

// NewQuery wraps v.
func NewQuery(v url.Values) *Query { return &Query{values: v} }

// Has reports whether key is present with a non-empty value.
func (q *Query) Has(key string) bool { return q.values.Get(key) != "" }

// String returns the value of key, or def when absent.
func (q *Query) String(key, def string) string {
	if v := q.values.Get(key); v != "" {
		return v
	}
	return def
}

// Int returns key parsed as an integer, or def when absent.
func (q *Query) Int(key string, def int) int {
	v := q.values.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(key, v)
		return def
	}
	return n
}

// IntPtr returns key parsed as an integer, or nil when absent.
func (q *Query) IntPtr(key string) *int {
	if !q.Has(key) {
		return nil
	}
	n := q.Int(key, 0)
	return &n
}

// Float returns key parsed as a float, or def when absent.
func (q *Query) Float(key string, def float64) float64 {
	v := q.values.Get(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		q.fail(key, v)
		return def
	}
	return f
}

// Bool returns key parsed as a boolean, or def when absent.
func (q *Query) Bool(key string, def bool) bool {
	v := q.values.Get(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(key, v)
		return def
	}
	return b
}

// List returns the comma-separated values of key, or nil when absent.
func (q *Query) List(key string) []string {
	v := q.values.Get(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Err returns the first parse failure, if any.
func (q *Query) Err() error { return q.err }

func (q *Query) fail(key, value string) {
	if q.err == nil {
		q.err = errors.New(errors.ErrCodeInvalidInput, "invalid value for %s: %q", key, value)
	}
}
