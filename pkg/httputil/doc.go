// Package httputil provides the response and request helpers shared by the
// glyphgrid HTTP handlers.
//
// # Responses
//
// [WriteJSON] writes a value as JSON with a status code. [WriteError] maps
// a structured error to a status and writes it as
//
//	{"code": "INVALID_SCALE", "error": "scale must be a positive number, got 0"}
//
// The mapping is by error code: INVALID_* codes are 400, *_NOT_FOUND codes
// are 404, everything else is 500. Errors without a code are reported as
// INTERNAL_ERROR and their message is not exposed.
//
// # Query parameters
//
// [Query] reads typed values from a URL query. Absent parameters leave the
// destination alone; malformed ones are collected and reported as a single
// INVALID_INPUT error from [Query.Err]:
//
//	q := httputil.NewQuery(r.URL.Query())
//	cfg.Columns = q.Int("columns", 10)
//	scale := q.Float("scale", 1)
//	if err := q.Err(); err != nil {
//	    httputil.WriteError(w, err)
//	    return
//	}
package httputil
