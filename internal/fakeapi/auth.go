package fakeapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ownerClaims are carried by issued tokens
type ownerClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// issueToken signs a token for the owner
func (s *Server) issueToken(userID, username string) (string, error) {
	now := time.Now()
	claims := ownerClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// validateToken checks a raw token string
func (s *Server) validateToken(raw string) (*ownerClaims, error) {
	claims := &ownerClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// requireToken rejects requests without a valid raw token
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		if raw == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}
		if _, err := s.validateToken(raw); err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResult struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

// login handles POST /owner/login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.RLock()
	owner := s.owner
	hash := s.passwordHash
	s.mu.RUnlock()

	if req.Username != owner.Username || hash == nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.issueToken(owner.ID, owner.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	respondJSON(w, http.StatusOK, itemEnvelope[loginResult]{Result: &loginResult{
		UserID:   owner.ID,
		Username: owner.Username,
		Name:     owner.Name,
		Token:    token,
	}})
}

// IssueToken returns a valid token for the seeded owner
func (s *Server) IssueToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issueToken(s.owner.ID, s.owner.Username)
}
