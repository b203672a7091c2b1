package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/galcheat/galcheat/pkg/survey"
	"github.com/galcheat/galcheat/server/internal/api"
	"github.com/galcheat/galcheat/server/internal/auth"
	"github.com/galcheat/galcheat/server/internal/catalog"
	"github.com/galcheat/galcheat/server/internal/config"
	"github.com/galcheat/galcheat/server/internal/exposition"
	"github.com/galcheat/galcheat/server/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to config file; built-in defaults when empty")
	logLevel := flag.String("log-level", "", "override log.level from the config (debug|info|warn|error)")
	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	slog.SetDefault(newLogger(os.Stdout, cfg.Log))

	apiKey, err := cfg.Server.Auth.ResolveKey()
	if err != nil {
		slog.Error("refusing to start with an open API", "err", err)
		os.Exit(1)
	}

	slog.Info("galcheat-server starting",
		"config", *configPath,
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"builtin_surveys", cfg.Surveys.Builtin,
		"survey_dir", cfg.Surveys.Dir,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src := catalog.Sources{Builtin: cfg.Surveys.Builtin, Dir: cfg.Surveys.Dir}
	reg := survey.NewRegistry()
	if err := catalog.Populate(reg, src); err != nil {
		slog.Error("failed to load surveys", "err", err)
		os.Exit(1)
	}
	slog.Info("surveys loaded", "surveys", reg.Names())

	// Catalog stream: pushes the survey list to clients after each reload.
	hub := ws.New(reg)
	go hub.Run(ctx)

	if cfg.Surveys.Dir != "" && cfg.Surveys.Watch {
		go func() {
			err := src.Watch(ctx, func(surveys []*survey.Survey) {
				if err := reg.Replace(surveys); err != nil {
					slog.Error("survey reload rejected", "err", err)
					return
				}
				hub.Notify()
			})
			if err != nil {
				slog.Error("survey watcher stopped", "err", err)
			}
		}()
	}

	apiHandler := api.New(reg)
	httpMux := http.NewServeMux()
	httpMux.Handle("/metrics", exposition.New(reg, cfg.Exposition.ReferenceMagnitudes))
	httpMux.Handle("/api/v1/health", apiHandler)
	guard := func(h http.Handler) http.Handler {
		return auth.APIKey(cfg.Server.Auth.Mode, cfg.Server.Auth.EffectiveHeader(), apiKey, h)
	}
	httpMux.Handle("/api/v1/stream", guard(hub))
	httpMux.Handle("/api/", guard(apiHandler))

	httpSrv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:     httpMux,
		ReadTimeout: cfg.Server.ReadTimeout,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("galcheat-server shutting down")

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
}

// newLogger builds the process logger from the log settings.
func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
