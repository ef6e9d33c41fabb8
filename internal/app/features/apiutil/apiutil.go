// internal/app/features/apiutil/apiutil.go
//
// Small helpers shared by the JSON feature handlers: response writing,
// bounded request decoding, and path-parameter parsing.
package apiutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nimble-la/stars/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body: {"error": "..."}.
func Error(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}

// ServerError hides internal detail behind a generic message; the
// handler logs the real error.
func ServerError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "internal error")
}

// Decode reads a JSON request body into dst, bounded to
// limits.MaxJSONBodySize. Returns a caller-safe error message.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errors.New("request body too large")
		}
		return errors.New("invalid JSON body")
	}
	return nil
}

// IDParam parses the chi URL parameter <name> as a Mongo ObjectID.
func IDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid id")
	}
	return id, nil
}
