package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerMiddleware_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := NewLoggerMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/orders/create/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "request handled", record["msg"])
	assert.Equal(t, http.MethodPost, record["method"])
	assert.Equal(t, "/orders/create/", record["path"])
	assert.Equal(t, float64(http.StatusCreated), record["status"])
	assert.NotEmpty(t, record["duration"])
}

func TestLoggerMiddleware_DefaultsToOK(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := NewLoggerMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/products/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, float64(http.StatusOK), record["status"])
}
