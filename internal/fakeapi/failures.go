package fakeapi

import (
	"net/http"
	"strings"
)

// FailureType is the kind of failure injected for a route
type FailureType string

const (
	// FailureStatus answers with Failure.Status and an error body
	FailureStatus FailureType = "status"
	// FailureEnvelope answers 200 with success=false
	FailureEnvelope FailureType = "envelope"
	// FailureDropConnection closes the connection without answering
	FailureDropConnection FailureType = "drop_connection"
	// FailureMalformed answers 200 with a body that is not JSON
	FailureMalformed FailureType = "malformed"
)

// Failure describes how a route misbehaves
type Failure struct {
	Type    FailureType
	Status  int
	Message string
}

// Fail makes every request matching method and the first path segment of
// path (e.g. "/experience") fail. An empty method matches all methods.
func (s *Server) Fail(method, path string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[failureKey(method, path)] = f
}

// Recover removes every injected failure
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.failures)
}

func failureKey(method, path string) string {
	return method + " " + resourceOf(path)
}

// resourceOf returns the first path segment with its leading slash
func resourceOf(path string) string {
	path = "/" + strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path[1:], '/'); i >= 0 {
		return path[:i+1]
	}
	return path
}

func (s *Server) failureFor(r *http.Request) (Failure, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if f, ok := s.failures[failureKey(r.Method, r.URL.Path)]; ok {
		return f, true
	}
	f, ok := s.failures[failureKey("", r.URL.Path)]
	return f, ok
}

// inject applies a configured failure before the route runs
func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := s.failureFor(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		switch f.Type {
		case FailureStatus:
			status := f.Status
			if status == 0 {
				status = http.StatusInternalServerError
			}
			respondError(w, status, f.Message)
		case FailureEnvelope:
			respondJSON(w, http.StatusOK, listEnvelope[any]{
				Success: false,
				Message: f.Message,
				Error:   &f.Message,
				Result:  page[any]{Result: []any{}},
			})
		case FailureDropConnection:
			hj, ok := w.(http.Hijacker)
			if !ok {
				respondError(w, http.StatusInternalServerError, "connection cannot be dropped")
				return
			}
			conn, _, err := hj.Hijack()
			if err == nil {
				conn.Close()
			}
		case FailureMalformed:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("<html>not json</html>"))
		default:
			next.ServeHTTP(w, r)
		}
	})
}
