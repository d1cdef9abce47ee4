// Package app wires the meshd service together and runs it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mantle3d/mantle/geo"
	"github.com/mantle3d/mantle/internal/meshd/config"
	"github.com/mantle3d/mantle/internal/meshd/handler"
	"github.com/mantle3d/mantle/internal/meshd/store"
	"github.com/mantle3d/mantle/internal/meshd/telemetry"
	"github.com/mantle3d/mantle/internal/meshd/usecase"
	"github.com/mantle3d/mantle/terrain"
)

func Run(cfg *config.Config) error {
	logger, err := newLogger(cfg.Logger.Level)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	l := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				l.Errorw("telemetry shutdown failed", "error", err)
			}
		}()
	}

	meshStore, err := newStore(cfg, l)
	if err != nil {
		return fmt.Errorf("initialize %s store: %w", cfg.Store.Backend, err)
	}
	defer func() {
		if closer, ok := meshStore.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				l.Errorw("store close failed", "error", err)
			}
		}
	}()

	gen := terrain.NewPatchGenerator(geo.NewWebMercatorTilingScheme(), cfg.Mesh.Subdivision, nil)
	meshUseCase := usecase.NewMeshUseCase(meshStore, gen, l)

	validate := validator.New()
	h := handler.NewHandler(validate, meshUseCase, l, cfg.Mesh.MaxLevel)
	router := handler.NewRouter(h, l)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Infow("starting http server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		l.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	l.Infow("shutting down http server", "address", server.Addr)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	l.Info("application shutdown completed")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = lvl
	return zapCfg.Build()
}

func newStore(cfg *config.Config, l *zap.SugaredLogger) (store.MeshStore, error) {
	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
	case "sqlite":
		return store.NewSQLiteStore(cfg.Store.SQLitePath, l)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
