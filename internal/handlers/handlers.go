package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"termfolio.dev/internal/config"
	"termfolio.dev/internal/editor"
	"termfolio.dev/internal/gateway"
	"termfolio.dev/internal/middleware"
	"termfolio.dev/internal/services"
	"termfolio.dev/internal/state"
)

// Deps are the collaborators shared by all handlers
type Deps struct {
	Config  *config.Config
	State   *state.Container
	Gateway *gateway.Client
	Logger  *slog.Logger
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   deps.Config.Origins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}).Handler)

	// Initialize services
	projectService := services.NewProjectService(deps.State)
	profileService := services.NewProfileService(deps.State)

	// Initialize handlers
	projectHandler := NewProjectHandler(projectService)
	viewerHandler := NewViewerHandler(deps.State, profileService, logger)
	adminHandler := NewAdminHandler(deps.State, deps.Gateway, logger)

	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", viewerHandler.GetState)
		r.Put("/theme", viewerHandler.SetTheme)
		r.Post("/theme/toggle", viewerHandler.ToggleTheme)
		r.Put("/mode", viewerHandler.SetMode)
		r.Put("/page", viewerHandler.SetPage)

		r.Get("/site", viewerHandler.GetSite)
		r.Get("/experience", viewerHandler.ListExperience)
		r.Get("/contact", viewerHandler.GetContact)

		// Project endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", adminHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(deps.State))

			r.Post("/logout", adminHandler.Logout)

			r.Get("/info", adminHandler.GetInfo)
			r.Put("/info", adminHandler.UpdateInfo)

			r.Get("/experience", adminHandler.ListExperience)
			r.Post("/experience", adminHandler.CreateExperience)
			r.Put("/experience/{id}", adminHandler.UpdateExperience)
			r.Delete("/experience/{id}", adminHandler.DeleteExperience)

			r.Get("/projects", adminHandler.ListProjects)
			r.Post("/projects", adminHandler.CreateProject)
			r.Put("/projects/{id}", adminHandler.UpdateProject)
			r.Delete("/projects/{id}", adminHandler.DeleteProject)

			r.Get("/technologies", adminHandler.ListTechnologies)
			r.Post("/technologies", adminHandler.CreateTechnology)
			r.Put("/technologies/{id}", adminHandler.UpdateTechnology)
			r.Delete("/technologies/{id}", adminHandler.DeleteTechnology)
		})
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondFailure maps an editor or gateway error to a status code. message
// overrides the error's own text when set.
func respondFailure(w http.ResponseWriter, err error, message string) {
	if message == "" {
		message = gateway.Message(err)
	}

	var gwErr *gateway.Error
	switch {
	case errors.Is(err, editor.ErrBusy):
		respondError(w, http.StatusConflict, message)
	case errors.Is(err, editor.ErrNotFound):
		respondError(w, http.StatusNotFound, message)
	case errors.As(err, &gwErr):
		respondError(w, gatewayStatus(gwErr), message)
	default:
		respondError(w, http.StatusInternalServerError, message)
	}
}

func gatewayStatus(err *gateway.Error) int {
	switch err.Kind {
	case gateway.ValidationFailure:
		return http.StatusBadRequest
	case gateway.ServerRejection:
		if err.Status >= 400 {
			return err.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// decodeBody parses a JSON request body, answering 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
