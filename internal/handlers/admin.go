package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"termfolio.dev/internal/editor"
	"termfolio.dev/internal/gateway"
	"termfolio.dev/internal/models"
	"termfolio.dev/internal/state"
)

// AdminHandler exposes the content editors. Every request drives a fresh
// editor against the shared state; deletions are pre-confirmed by the
// caller issuing the DELETE.
//
// Saves are serialized per resource: while one is in flight, another
// request for the same resource gets 409.
type AdminHandler struct {
	state   *state.Container
	gateway *gateway.Client
	logger  *slog.Logger

	info         sync.Mutex
	experience   sync.Mutex
	projects     sync.Mutex
	technologies sync.Mutex
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(st *state.Container, gw *gateway.Client, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{state: st, gateway: gw, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	form := editor.NewLogin(h.gateway, h.state)
	res, err := form.Submit(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "admin login failed", slog.String("error", err.Error()))
		respondFailure(w, err, form.Status().Error)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message":  form.Status().Success,
		"user_id":  res.UserID,
		"username": res.Username,
		"name":     res.Name,
		"token":    res.Token,
	})
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.state.Logout(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "failed to clear auth token", slog.String("error", err.Error()))
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetInfo handles GET /admin/info
func (h *AdminHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.state.SiteInfo())
}

// UpdateInfo handles PUT /admin/info
func (h *AdminHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	var info models.SiteInfo
	if !decodeBody(w, r, &info) {
		return
	}
	if info.ID == "" {
		info.ID = h.state.SiteInfo().ID
	}

	if !claim(w, &h.info) {
		return
	}
	defer h.info.Unlock()

	form := editor.NewInfo(h.state)
	form.SetDraft(info)
	if err := form.Submit(r.Context()); err != nil {
		respondFailure(w, err, form.Status().Error)
		return
	}
	respondJSON(w, http.StatusOK, h.state.SiteInfo())
}

// ListExperience handles GET /admin/experience
func (h *AdminHandler) ListExperience(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.state.Experience())
}

// CreateExperience handles POST /admin/experience
func (h *AdminHandler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	h.saveExperience(w, r, "")
}

// UpdateExperience handles PUT /admin/experience/{id}
func (h *AdminHandler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	h.saveExperience(w, r, chi.URLParam(r, "id"))
}

func (h *AdminHandler) saveExperience(w http.ResponseWriter, r *http.Request, id string) {
	var exp models.Experience
	if !decodeBody(w, r, &exp) {
		return
	}

	if !claim(w, &h.experience) {
		return
	}
	defer h.experience.Unlock()

	ed := editor.NewExperience(h.gateway, h.state, editor.AlwaysConfirm)
	if id != "" {
		if err := ed.Edit(id); err != nil {
			respondError(w, http.StatusNotFound, "Experience not found")
			return
		}
	}
	h.loadCatalogue(r, ed.LoadCatalogue)
	ed.SetDraft(exp)
	ed.SetTech(selectedTech(exp.TechnologyIDs, exp.Technologies))

	saved, err := ed.Submit(r.Context())
	if err != nil {
		respondFailure(w, err, ed.Status().Error)
		return
	}
	respondJSON(w, savedStatus(id), saved)
}

// DeleteExperience handles DELETE /admin/experience/{id}
func (h *AdminHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	if !claim(w, &h.experience) {
		return
	}
	defer h.experience.Unlock()

	ed := editor.NewExperience(h.gateway, h.state, editor.AlwaysConfirm)
	if err := ed.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondFailure(w, err, ed.Status().Error)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListProjects handles GET /admin/projects
func (h *AdminHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.state.Projects())
}

// CreateProject handles POST /admin/projects
func (h *AdminHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	h.saveProject(w, r, "")
}

// UpdateProject handles PUT /admin/projects/{id}
func (h *AdminHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	h.saveProject(w, r, chi.URLParam(r, "id"))
}

func (h *AdminHandler) saveProject(w http.ResponseWriter, r *http.Request, id string) {
	var p models.Project
	if !decodeBody(w, r, &p) {
		return
	}

	if !claim(w, &h.projects) {
		return
	}
	defer h.projects.Unlock()

	ed := editor.NewProjects(h.gateway, h.state, editor.AlwaysConfirm)
	if id != "" {
		if err := ed.Edit(id); err != nil {
			respondError(w, http.StatusNotFound, "Project not found")
			return
		}
	}
	h.loadCatalogue(r, ed.LoadCatalogue)
	ed.SetDraft(p)
	ed.SetTech(selectedTech(p.TechnologyIDs, p.Tech))

	saved, err := ed.Submit(r.Context())
	if err != nil {
		respondFailure(w, err, ed.Status().Error)
		return
	}
	respondJSON(w, savedStatus(id), saved)
}

// DeleteProject handles DELETE /admin/projects/{id}
func (h *AdminHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if !claim(w, &h.projects) {
		return
	}
	defer h.projects.Unlock()

	ed := editor.NewProjects(h.gateway, h.state, editor.AlwaysConfirm)
	if err := ed.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondFailure(w, err, ed.Status().Error)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTechnologies handles GET /admin/technologies
func (h *AdminHandler) ListTechnologies(w http.ResponseWriter, r *http.Request) {
	ed := editor.NewTechnologies(h.gateway, editor.AlwaysConfirm)
	if err := ed.Load(r.Context()); err != nil {
		respondFailure(w, err, ed.Status().Error)
		return
	}
	respondJSON(w, http.StatusOK, ed.List())
}

// CreateTechnology handles POST /admin/technologies
func (h *AdminHandler) CreateTechnology(w http.ResponseWriter, r *http.Request) {
	var t models.Technology
	if !decodeBody(w, r, &t) {
		return
	}

	if !claim(w, &h.technologies) {
		return
	}
	defer h.technologies.Unlock()

	ed := editor.NewTechnologies(h.gateway, editor.AlwaysConfirm)
	ed.SetDraft(t)
	saved, err := ed.Submit(r.Context())
	if err != nil {
		respondFailure(w, err, ed.Status().Error)
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

// UpdateTechnology handles PUT /admin/technologies/{id}
func (h *AdminHandler) UpdateTechnology(w http.ResponseWriter, r *http.Request) {
	var t models.Technology
	if !decodeBody(w, r, &t) {
		return
	}

	if !claim(w, &h.technologies) {
		return
	}
	defer h.technologies.Unlock()

	ed := editor.NewTechnologies(h.gateway, editor.AlwaysConfirm)
	if err := ed.Load(r.Context()); err != nil {
		respondFailure(w, err, ed.Status().Error)
		return
	}
	if err := ed.Edit(chi.URLParam(r, "id")); err != nil {
		respondError(w, http.StatusNotFound, "Technology not found")
		return
	}
	ed.SetDraft(t)

	saved, err := ed.Submit(r.Context())
	if err != nil {
		respondFailure(w, err, ed.Status().Error)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

// DeleteTechnology handles DELETE /admin/technologies/{id}
func (h *AdminHandler) DeleteTechnology(w http.ResponseWriter, r *http.Request) {
	if !claim(w, &h.technologies) {
		return
	}
	defer h.technologies.Unlock()

	ed := editor.NewTechnologies(h.gateway, editor.AlwaysConfirm)
	if err := ed.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondFailure(w, err, ed.Status().Error)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadCatalogue fetches the technology catalogue for an editor. Without it
// selected ids are shown by id, so a failure is only logged.
func (h *AdminHandler) loadCatalogue(r *http.Request, load func(ctx context.Context) error) {
	if err := load(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "failed to load technologies", slog.String("error", err.Error()))
	}
}

// claim takes a resource's save lock, answering 409 when it is held
func claim(w http.ResponseWriter, mu *sync.Mutex) bool {
	if !mu.TryLock() {
		respondFailure(w, editor.ErrBusy, "A save is already in progress. Please wait.")
		return false
	}
	return true
}

// selectedTech prefers explicit ids over the embedded technologies
func selectedTech(ids []string, techs []models.Technology) []string {
	if len(ids) > 0 {
		return ids
	}
	out := make([]string, 0, len(techs))
	for _, t := range techs {
		if t.ID != "" {
			out = append(out, t.ID)
		}
	}
	return out
}

func savedStatus(id string) int {
	if id == "" {
		return http.StatusCreated
	}
	return http.StatusOK
}
