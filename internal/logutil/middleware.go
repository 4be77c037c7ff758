package logutil

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type (
	statusWriter struct {
		http.ResponseWriter
		status int
		size   int
	}
)

const (
	RequestIDHeader = "X-Request-Id"
)

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// RequestLogger tags each request with an id, makes a child logger
// carrying it available through GetOrDefault and logs the outcome once
// the handler returns.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.NewString()
		}
		log := GetOrDefault(r.Context()).With().Str("request.id", reqID).Logger()
		ctx := WithLogger(context.WithValue(r.Context(), requestIDKey, reqID), log)
		w.Header().Set(RequestIDHeader, reqID)

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r.WithContext(ctx))
		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		ev := log.Info()
		if sw.status >= 500 {
			ev = log.Error()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Int("size", sw.size).
			Dur("duration", time.Since(start)).
			Msg("Request completed")
	})
}
