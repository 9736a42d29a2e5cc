package handlers

import (
	"log/slog"
	"net/http"

	"termfolio.dev/internal/services"
	"termfolio.dev/internal/state"
)

// ViewerHandler serves the classic layout and its view state
type ViewerHandler struct {
	state   *state.Container
	profile *services.ProfileService
	logger  *slog.Logger
}

// NewViewerHandler creates a new ViewerHandler
func NewViewerHandler(st *state.Container, profile *services.ProfileService, logger *slog.Logger) *ViewerHandler {
	return &ViewerHandler{state: st, profile: profile, logger: logger}
}

// GetState handles GET /api/state
func (h *ViewerHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.state.Snapshot())
}

// GetSite handles GET /api/site
func (h *ViewerHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.profile.Site())
}

// ListExperience handles GET /api/experience
func (h *ViewerHandler) ListExperience(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.profile.Experience())
}

// GetContact handles GET /api/contact
func (h *ViewerHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.profile.Contact())
}

// SetTheme handles PUT /api/theme
func (h *ViewerHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	theme, err := state.ParseTheme(req.Theme)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid theme. Use 'light' or 'dark'.")
		return
	}
	if err := h.state.SetTheme(r.Context(), theme); err != nil {
		h.logger.WarnContext(r.Context(), "failed to persist theme", slog.String("error", err.Error()))
	}
	respondJSON(w, http.StatusOK, h.state.Snapshot())
}

// ToggleTheme handles POST /api/theme/toggle
func (h *ViewerHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	if _, err := h.state.ToggleTheme(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "failed to persist theme", slog.String("error", err.Error()))
	}
	respondJSON(w, http.StatusOK, h.state.Snapshot())
}

// SetMode handles PUT /api/mode
func (h *ViewerHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	mode, err := state.ParseMode(req.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid mode. Use 'terminal' or 'classic'.")
		return
	}
	h.state.SetMode(mode)
	respondJSON(w, http.StatusOK, h.state.Snapshot())
}

// SetPage handles PUT /api/page
func (h *ViewerHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page string `json:"page"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	page, err := state.ParsePage(req.Page)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid page")
		return
	}
	h.state.SetPage(page)
	respondJSON(w, http.StatusOK, h.state.Snapshot())
}
