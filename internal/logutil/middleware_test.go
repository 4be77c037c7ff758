package logutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	var seenID string
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestID(r.Context())
		log := GetOrDefault(r.Context())
		log.Info().Msg("inside")
		w.WriteHeader(http.StatusTeapot)
	}))
	withBase := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r.WithContext(WithLogger(context.Background(), base)))
	})

	apitest.New().
		Handler(withBase).
		Get("/teapot").
		Expect(t).
		Status(http.StatusTeapot).
		End()

	if seenID == "" {
		t.Fatal("handler should see a request id")
	}
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var last map[string]interface{}
	if err := json.Unmarshal(lines[1], &last); err != nil {
		t.Fatal(err)
	}
	require.Equal(t, seenID, last["request.id"])
	require.Equal(t, float64(http.StatusTeapot), last["status"])
	require.Equal(t, "/teapot", last["path"])
}
