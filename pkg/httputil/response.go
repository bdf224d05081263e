package httputil

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/glyphgrid/pkg/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

// MaxBodyBytes caps every request body the server reads.
const MaxBodyBytes int64 = 64 << 10

// StatusCode returns the HTTP status for err.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case tooLarge(err):
		return http.StatusRequestEntityTooLarge
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an [ErrorBody] with the status from [StatusCode].
func WriteError(w http.ResponseWriter, err error) {
	body := ErrorBody{Code: errors.GetCode(err), Error: errors.UserMessage(err)}
	if tooLarge(err) {
		body = ErrorBody{Code: errors.ErrCodeTooLarge, Error: "request body too large"}
	} else if body.Code == "" {
		body = ErrorBody{Code: errors.ErrCodeInternal, Error: "internal error"}
	}
	WriteJSON(w, StatusCode(err), body)
}

// LimitBody caps r.Body at [MaxBodyBytes]. Reads past the cap fail with
// an error that [StatusCode] maps to 413.
func LimitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
// The body is capped with [LimitBody].
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	LimitBody(w, r)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// tooLarge reports whether err comes from reading past a body limit.
func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return stderrors.As(err, &mbe) || errors.Is(err, errors.ErrCodeTooLarge)
}
