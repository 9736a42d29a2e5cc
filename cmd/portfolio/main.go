// Command portfolio runs the portfolio client, either as an HTTP server for
// the classic layout and admin editors or as an interactive terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"termfolio.dev/internal/config"
	"termfolio.dev/internal/gateway"
	"termfolio.dev/internal/handlers"
	"termfolio.dev/internal/middleware"
	"termfolio.dev/internal/observability"
	"termfolio.dev/internal/state"
	"termfolio.dev/internal/store"
)

// app is everything the two modes share
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	kv      store.KV
	gateway *gateway.Client
	state   *state.Container
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one mode and returns the process exit code. Deferred
// cleanup runs before main exits.
func run(args []string) int {
	mode := "serve"
	if len(args) > 0 {
		mode = args[0]
	}
	if mode != "serve" && mode != "terminal" {
		fmt.Println("Usage: portfolio [serve|terminal]")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}
	defer func() {
		if err := a.kv.Close(); err != nil {
			a.logger.Warn("failed to close store", slog.String("error", err.Error()))
		}
	}()

	if mode == "terminal" {
		err = a.runTerminal(ctx, os.Stdin, os.Stdout)
	} else {
		err = a.serve(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("portfolio stopped", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func newApp(ctx context.Context, mode string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// The terminal owns stdout, so logs go to stderr in both modes
	base := observability.NewLogger(os.Stderr, cfg.Env, cfg.LogLevel)
	logger := slog.New(middleware.ContextHandler(base.Handler())).With(slog.String("mode", mode))
	slog.SetDefault(logger)

	kv, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}

	tokens := store.NewTokenStore(kv)
	gw := gateway.New(cfg.APIBaseURL, tokens,
		gateway.WithTimeout(cfg.HTTPTimeout),
		gateway.WithCache(cfg.CacheTTL),
		gateway.WithLogger(logger),
	)

	st, err := state.New(ctx, state.Deps{
		Gateway:      gw,
		Tokens:       tokens,
		Preferences:  store.NewPreferences(kv),
		Defaults:     cfg.Defaults,
		DefaultTheme: state.Theme(cfg.DefaultTheme),
		Logger:       logger,
	})
	if err != nil {
		kv.Close()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, kv: kv, gateway: gw, state: st}, nil
}

// serve runs the HTTP server until ctx is done. Content loads in the
// background; until then the bundled defaults are served.
func (a *app) serve(ctx context.Context) error {
	go a.state.Bootstrap(ctx)

	srv := &http.Server{
		Addr: a.cfg.ServerAddr,
		Handler: handlers.SetupRoutes(handlers.Deps{
			Config:  a.cfg,
			State:   a.state,
			Gateway: a.gateway,
			Logger:  a.logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", slog.String("addr", a.cfg.ServerAddr), slog.String("api", a.cfg.APIBaseURL))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
