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

	"github.com/p-n-ai/pai-learn/internal/ai"
	"github.com/p-n-ai/pai-learn/internal/catalog"
	"github.com/p-n-ai/pai-learn/internal/platform/config"
	"github.com/p-n-ai/pai-learn/internal/platform/database"
	"github.com/p-n-ai/pai-learn/internal/platform/logging"
	"github.com/p-n-ai/pai-learn/internal/server"
	"github.com/p-n-ai/pai-learn/internal/store"
	"github.com/p-n-ai/pai-learn/internal/tutor"
	"github.com/p-n-ai/pai-learn/internal/video"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer func() { _ = logCloser.Close() }()
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	router := newAIRouter(cfg)
	if !router.HasProvider() {
		return errors.New("no AI provider registered")
	}

	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: server.New(server.Deps{
			Store:     st,
			Catalog:   cat,
			Generator: tutor.New(router),
			Finder:    video.New(cfg.YouTube.APIKey),
			AI:        router,
		}).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls are slow
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "store", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	return nil
}

// openStore connects the configured database driver and returns the store
// with a function that releases it.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	hasher := store.NewHasher(cfg.Auth.Pepper)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		st, err := store.NewPostgresStore(db.Pool, hasher)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return st, db.Close, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		st, err := store.NewSQLiteStore(db, hasher)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return st, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// newAIRouter registers every provider with a configured key and applies
// task routes. Google is registered first when present, so it serves
// unpinned tasks.
func newAIRouter(cfg *config.Config) *ai.Router {
	router := ai.NewRouter()

	if cfg.AI.Google.APIKey != "" {
		router.Register("google", ai.NewGoogleProvider(cfg.AI.Google.APIKey, ai.WithGoogleModel(cfg.AI.Google.Model)))
		slog.Info("AI provider registered", "provider", "google", "model", cfg.AI.Google.Model)
	}
	if cfg.AI.OpenAI.APIKey != "" {
		router.Register("openai", ai.NewOpenAIProvider(cfg.AI.OpenAI.APIKey, ai.WithModel(cfg.AI.OpenAI.Model)))
		slog.Info("AI provider registered", "provider", "openai", "model", cfg.AI.OpenAI.Model)
	}
	if cfg.AI.DeepSeek.APIKey != "" {
		router.Register("deepseek", ai.NewDeepSeekProvider(cfg.AI.DeepSeek.APIKey))
		slog.Info("AI provider registered", "provider", "deepseek")
	}

	for name, provider := range cfg.AI.TaskRoutes {
		task, ok := ai.ParseTask(name)
		if !ok {
			slog.Warn("ignoring route for unknown task", "task", name)
			continue
		}
		if err := router.Route(task, provider); err != nil {
			slog.Warn("ignoring task route", "task", name, "error", err)
			continue
		}
		slog.Info("AI task routed", "task", name, "provider", provider)
	}

	return router
}
