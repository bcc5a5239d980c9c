package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GyroZepelix/newsboard/internal/validate"
)

// maxBodySize is the maximum allowed request body size (1 MiB).
const maxBodySize = 1 << 20

// DecodeJSON reads a size-limited JSON request body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	return validate.Decode(r.Body, dst)
}

// IntParam parses the named chi URL parameter as an integer id. A value that
// is not an integer, or is out of range for an id column, is an invalid data
// format error.
func IntParam(r *http.Request, name string) (int, error) {
	return validate.Int(name, chi.URLParam(r, name))
}
