package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/digits/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "digits", Version: "v0", Env: "test", Level: "debug", Output: &buf})

	logger.Debug("hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["msg"])
	require.Equal(t, "digits", line["service"])
	require.Equal(t, "v", line["k"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Level: "warn", Format: "text", Output: &buf})

	logger.Info("dropped")
	require.Empty(t, buf.String())

	logger.Warn("kept")
	require.Contains(t, buf.String(), "kept")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	require.NotNil(t, slogx.FromContext(context.Background()))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "digits", Output: &buf})

	var sawLogger bool
	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = slogx.FromContext(r.Context()) != nil
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, sawLogger)
	require.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "http_request", line["msg"])
	require.Equal(t, "req-123", line["req_id"])
	require.EqualValues(t, http.StatusTeapot, line["status"])
}

func TestHTTPMiddlewareReplacesUnsafeRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Output: &buf})

	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/list", nil)
	req.Header.Set(slogx.RequestIDHeader, "forged\nline")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	got := rec.Header().Get(slogx.RequestIDHeader)
	require.NotEqual(t, "forged\nline", got)
	require.Len(t, got, 26)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "ERROR", line["level"])
	require.EqualValues(t, len("boom\n"), line["bytes"])
}
