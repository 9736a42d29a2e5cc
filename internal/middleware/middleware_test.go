package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	token string
	err   error
}

func (s session) Token(context.Context) (string, bool, error) {
	return s.token, s.token != "", s.err
}

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name   string
		sess   session
		header string
		want   int
	}{
		{"no session", session{}, "tok", http.StatusUnauthorized},
		{"session but no header", session{token: "tok"}, "", http.StatusUnauthorized},
		{"wrong token", session{token: "tok"}, "other", http.StatusUnauthorized},
		{"prefix of token", session{token: "tok"}, "to", http.StatusUnauthorized},
		{"raw token", session{token: "tok"}, "tok", http.StatusNoContent},
		{"bearer token", session{token: "tok"}, "Bearer tok", http.StatusNoContent},
		{"store error", session{token: "tok", err: errors.New("store offline")}, "tok", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/info", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			RequireAuth(tt.sess)(http.HandlerFunc(ok)).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ContextHandler(slog.NewJSONHandler(&buf, nil)))
	h := RequestID(Logger(logger)(http.HandlerFunc(ok)))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	h.ServeHTTP(rec, req)

	assert.Equal(t, "rid-1", rec.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"rid-1"`)
	assert.Contains(t, buf.String(), `"status":204`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}
