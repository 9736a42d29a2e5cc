package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"termfolio.dev/internal/services"
)

// ProjectHandler serves the classic projects page
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: ps}
}

// ListProjects handles GET /api/projects, optionally narrowed with ?tech=<id>
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	if tech := strings.TrimSpace(r.URL.Query().Get("tech")); tech != "" {
		respondJSON(w, http.StatusOK, h.projectService.UsingTechnology(tech))
		return
	}
	respondJSON(w, http.StatusOK, h.projectService.GetAll())
}

// GetProject handles GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.projectService.Detail(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Project not found: "+id)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}
