package fakeapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"termfolio.dev/internal/models"
)

type page[T any] struct {
	Result       []T  `json:"result"`
	TotalCount   int  `json:"total_count"`
	CurrentCount int  `json:"current_count"`
	Next         bool `json:"next"`
	TotalPages   int  `json:"total_pages"`
	CurrentPage  int  `json:"current_page"`
}

type listEnvelope[T any] struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Result  page[T] `json:"result"`
	Error   *string `json:"error"`
}

type itemEnvelope[T any] struct {
	Result *T `json:"result"`
}

func newID() string {
	return uuid.NewString()
}

// respondList writes items as a single full page
func respondList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	respondJSON(w, http.StatusOK, listEnvelope[T]{
		Success: true,
		Message: "ok",
		Result: page[T]{
			Result:       items,
			TotalCount:   len(items),
			CurrentCount: len(items),
			TotalPages:   1,
			CurrentPage:  1,
		},
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// indexOf finds the position of the item with the given id
func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func experienceID(e models.Experience) string { return e.ID }
func projectID(p models.Project) string       { return p.ID }
func technologyID(t models.Technology) string { return t.ID }

// Owner

func (s *Server) listOwner(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	owner := s.owner.Clone()
	s.mu.RUnlock()
	respondList(w, []models.SiteInfo{owner})
}

func (s *Server) updateOwner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var info models.SiteInfo
	if !decodeBody(w, r, &info) {
		return
	}

	var hash []byte
	if info.Password != "" {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(info.Password), bcrypt.MinCost)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.owner.ID {
		respondError(w, http.StatusNotFound, "Owner not found")
		return
	}
	info.ID = id
	info.Password = ""
	if info.Username == "" {
		info.Username = s.owner.Username
	}
	s.owner = info.Clone()
	if hash != nil {
		s.passwordHash = hash
	}
	respondJSON(w, http.StatusOK, itemEnvelope[models.SiteInfo]{Result: &info})
}

// Experience

func (s *Server) listExperience(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	items := make([]models.Experience, 0, len(s.experience))
	for _, e := range s.experience {
		items = append(items, e.Clone())
	}
	s.mu.RUnlock()
	respondList(w, items)
}

func (s *Server) createExperience(w http.ResponseWriter, r *http.Request) {
	var e models.Experience
	if !decodeBody(w, r, &e) {
		return
	}
	if e.Role == "" || e.Company == "" {
		respondError(w, http.StatusBadRequest, "Role and company are required")
		return
	}
	e.ID = newID()

	s.mu.Lock()
	s.experience = append(s.experience, e.Clone())
	s.mu.Unlock()
	respondJSON(w, http.StatusCreated, itemEnvelope[models.Experience]{Result: &e})
}

func (s *Server) updateExperience(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var e models.Experience
	if !decodeBody(w, r, &e) {
		return
	}
	e.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.experience, id, experienceID)
	if i < 0 {
		respondError(w, http.StatusNotFound, "Experience not found")
		return
	}
	s.experience[i] = e.Clone()
	respondJSON(w, http.StatusOK, itemEnvelope[models.Experience]{Result: &e})
}

func (s *Server) deleteExperience(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.experience, id, experienceID)
	if i < 0 {
		respondError(w, http.StatusNotFound, "Experience not found")
		return
	}
	s.experience = append(s.experience[:i], s.experience[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

// Projects

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	items := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		items = append(items, p.Clone())
	}
	s.mu.RUnlock()
	respondList(w, items)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if !decodeBody(w, r, &p) {
		return
	}
	if p.Name == "" {
		respondError(w, http.StatusBadRequest, "Project name is required")
		return
	}
	p.ID = newID()

	s.mu.Lock()
	s.projects = append(s.projects, p.Clone())
	s.mu.Unlock()
	respondJSON(w, http.StatusCreated, itemEnvelope[models.Project]{Result: &p})
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p models.Project
	if !decodeBody(w, r, &p) {
		return
	}
	p.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.projects, id, projectID)
	if i < 0 {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}
	s.projects[i] = p.Clone()
	respondJSON(w, http.StatusOK, itemEnvelope[models.Project]{Result: &p})
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.projects, id, projectID)
	if i < 0 {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}
	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

// Technologies

func (s *Server) listTechnologies(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	items := slices.Clone(s.technologies)
	s.mu.RUnlock()
	respondList(w, items)
}

func (s *Server) createTechnology(w http.ResponseWriter, r *http.Request) {
	var t models.Technology
	if !decodeBody(w, r, &t) {
		return
	}
	if t.ID == "" || t.Name == "" {
		respondError(w, http.StatusBadRequest, "Technology id and name are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.technologies, t.ID, technologyID) >= 0 {
		respondError(w, http.StatusConflict, "Technology already exists")
		return
	}
	s.technologies = append(s.technologies, t)
	respondJSON(w, http.StatusCreated, itemEnvelope[models.Technology]{Result: &t})
}

func (s *Server) updateTechnology(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var t models.Technology
	if !decodeBody(w, r, &t) {
		return
	}
	t.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.technologies, id, technologyID)
	if i < 0 {
		respondError(w, http.StatusNotFound, "Technology not found")
		return
	}
	s.technologies[i] = t
	respondJSON(w, http.StatusOK, itemEnvelope[models.Technology]{Result: &t})
}

func (s *Server) deleteTechnology(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.technologies, id, technologyID)
	if i < 0 {
		respondError(w, http.StatusNotFound, "Technology not found")
		return
	}
	s.technologies = append(s.technologies[:i], s.technologies[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}
