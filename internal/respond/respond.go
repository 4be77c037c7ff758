// Package respond writes the JSON bodies used by every faculty endpoint.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/andrebq/faculty/internal/logutil"
)

type (
	messageBody struct {
		Message string `json:"message"`
	}

	errorBody struct {
		Error string `json:"error"`
	}
)

func JSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Msg("Unable to encode response body")
	}
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, messageBody{Message: msg})
}

// Error writes {"error": msg}.
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, errorBody{Error: msg})
}

// Internal logs err with the request logger and answers 500 with a
// generic msg.
func Internal(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logutil.GetOrDefault(r.Context())
	log.Error().Err(err).Str("path", r.URL.Path).Msg(msg)
	Error(w, r, http.StatusInternalServerError, msg)
}

// Decode reads a JSON body into out, limited to 1 MiB.
func Decode(w http.ResponseWriter, r *http.Request, out interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return dec.Decode(out)
}
