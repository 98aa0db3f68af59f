package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erazemk/compracerta/internal/api"
	"github.com/erazemk/compracerta/internal/app"
	"github.com/erazemk/compracerta/internal/config"
	"github.com/erazemk/compracerta/internal/store"
)

func cmdServe(cfg config.Config, args []string) error {
	fs := newFlagSet("serve", &cfg)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	closeLog, err := setupLogger(cfg.LogPath, false)
	if err != nil {
		return err
	}
	defer closeLog()

	a := app.New(cfg)
	if err := a.Init(context.Background()); err != nil {
		return err
	}
	defer a.Close()

	if cfg.LegacyAuth {
		slog.Warn("legacy password hashing enabled; passwords are stored without protection")
	}

	// Load JWT secret from database (auto-generated on first run).
	jwtSecret, err := store.GetJWTSecret(context.Background(), a.DB())
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(a.DB(), jwtSecret, app.Hasher(cfg)))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	slog.Info("server stopped, closing database")
	return nil
}
