// Package fakeapi is an in-process stand-in for the portfolio backend.
//
// It serves the same REST surface and envelopes as the real service so the
// gateway, the editors and the CLI can be exercised end to end. Owner
// passwords are bcrypt hashed and login hands out HS256 tokens which the
// mutating routes expect verbatim in the Authorization header.
//
// Failures can be injected per route to simulate a misbehaving backend.
package fakeapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"termfolio.dev/internal/models"
)

// Call is one request received by the server
type Call struct {
	Method        string
	Path          string
	Authorization string
}

// Server holds the backend's data in memory
type Server struct {
	mu           sync.RWMutex
	secret       []byte
	tokenTTL     time.Duration
	owner        models.SiteInfo
	passwordHash []byte
	experience   []models.Experience // oldest first, as the real backend lists them
	projects     []models.Project
	technologies []models.Technology
	failures     map[string]Failure
	calls        []Call
	logger       *slog.Logger
}

// Option customizes a Server
type Option func(*Server)

// WithSecret sets the token signing key
func WithSecret(secret string) Option {
	return func(s *Server) { s.secret = []byte(secret) }
}

// WithTokenTTL sets how long issued tokens stay valid
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.tokenTTL = ttl }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates an empty server
func New(opts ...Option) *Server {
	s := &Server{
		secret:   []byte("termfolio-dev-secret"),
		tokenTTL: 24 * time.Hour,
		failures: make(map[string]Failure),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed is the initial content of a server
type Seed struct {
	Site         models.SiteInfo
	Experience   []models.Experience // most recent first
	Projects     []models.Project
	Technologies []models.Technology
}

// Load replaces all data with seed. Site.Password is the plaintext owner
// password; entries without ids are given one.
func (s *Server) Load(seed Seed) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Site.Password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.owner = seed.Site.Clone()
	s.owner.Password = ""
	if s.owner.ID == "" {
		s.owner.ID = newID()
	}
	s.passwordHash = hash

	s.experience = s.experience[:0]
	for _, e := range seed.Experience {
		e = e.Clone()
		if e.ID == "" {
			e.ID = newID()
		}
		s.experience = append(s.experience, e)
	}
	slices.Reverse(s.experience)

	s.projects = s.projects[:0]
	for _, p := range seed.Projects {
		p = p.Clone()
		if p.ID == "" {
			p.ID = newID()
		}
		s.projects = append(s.projects, p)
	}

	s.technologies = append([]models.Technology(nil), seed.Technologies...)
	return nil
}

// Handler returns the HTTP handler serving the backend routes
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.inject)

	r.Route("/owner", func(r chi.Router) {
		r.Get("/", s.listOwner)
		r.Post("/login", s.login)
		r.With(s.requireToken).Patch("/{id}", s.updateOwner)
	})

	r.Route("/experience", func(r chi.Router) {
		r.Get("/", s.listExperience)
		r.With(s.requireToken).Post("/", s.createExperience)
		r.With(s.requireToken).Patch("/{id}", s.updateExperience)
		r.With(s.requireToken).Delete("/{id}", s.deleteExperience)
	})

	r.Route("/project", func(r chi.Router) {
		r.Get("/", s.listProjects)
		r.With(s.requireToken).Post("/", s.createProject)
		r.With(s.requireToken).Patch("/{id}", s.updateProject)
		r.With(s.requireToken).Delete("/{id}", s.deleteProject)
	})

	r.Route("/technos", func(r chi.Router) {
		r.Get("/", s.listTechnologies)
		r.With(s.requireToken).Post("/", s.createTechnology)
		r.With(s.requireToken).Patch("/{id}", s.updateTechnology)
		r.With(s.requireToken).Delete("/{id}", s.deleteTechnology)
	})

	return r
}

// Calls returns every request received so far
func (s *Server) Calls() []Call {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Call(nil), s.calls...)
}

// CountCalls returns how many requests matched method and path prefix
func (s *Server) CountCalls(method, pathPrefix string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, c := range s.calls {
		if c.Method == method && len(c.Path) >= len(pathPrefix) && c.Path[:len(pathPrefix)] == pathPrefix {
			n++
		}
	}
	return n
}

// record keeps a log of received requests
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
		})
		s.mu.Unlock()

		s.logger.Debug("fake backend request", slog.String("method", r.Method), slog.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}
