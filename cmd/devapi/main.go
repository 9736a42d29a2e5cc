// Command devapi serves an in-memory portfolio backend seeded with the
// bundled content, for local development without the real service.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"termfolio.dev/internal/config"
	"termfolio.dev/internal/fakeapi"
	"termfolio.dev/internal/models"
	"termfolio.dev/internal/observability"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:3001", "listen address")
	username := flag.String("user", "admin", "owner username")
	password := flag.String("password", "admin", "owner password")
	secret := flag.String("secret", "", "token signing key; the built-in development key when empty")
	flag.Parse()

	logger := observability.NewLogger(os.Stderr, "development", os.Getenv("LOG_LEVEL"))

	defaults, err := config.LoadDefaults()
	if err != nil {
		logger.Error("failed to load bundled content", slog.String("error", err.Error()))
		os.Exit(1)
	}

	opts := []fakeapi.Option{fakeapi.WithLogger(logger)}
	if *secret != "" {
		opts = append(opts, fakeapi.WithSecret(*secret))
	}
	srv := fakeapi.New(opts...)

	site := defaults.Site
	site.Username = *username
	site.Password = *password
	if err := srv.Load(fakeapi.Seed{
		Site:         site,
		Experience:   defaults.Experience,
		Projects:     defaults.Projects,
		Technologies: catalogue(defaults.Projects, defaults.Experience),
	}); err != nil {
		logger.Error("failed to seed backend", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("dev backend listening", slog.String("addr", *addr), slog.String("user", *username))
	httpSrv := &http.Server{Addr: *addr, Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
	if err := httpSrv.ListenAndServe(); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// catalogue collects every technology referenced by the bundled content
func catalogue(projects []models.Project, experience []models.Experience) []models.Technology {
	seen := make(map[string]bool)
	var out []models.Technology
	add := func(techs []models.Technology) {
		for _, t := range techs {
			if t.ID != "" && !seen[t.ID] {
				seen[t.ID] = true
				out = append(out, t)
			}
		}
	}
	for _, p := range projects {
		add(p.Tech)
	}
	for _, e := range experience {
		add(e.Technologies)
	}
	return out
}
