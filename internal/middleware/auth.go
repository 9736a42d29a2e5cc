package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

// Session exposes the token of the active admin session
type Session interface {
	// Token returns the session token and whether a session is active
	Token(ctx context.Context) (string, bool, error)
}

// RequireAuth rejects requests with 401 unless their Authorization header
// carries the active session's token, raw or with a "Bearer " prefix
func RequireAuth(s Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
			if presented == "" {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			token, ok, err := s.Token(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to verify session")
				return
			}
			if !ok || token == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
