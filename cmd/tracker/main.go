package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/accommodation-tracker/internal/app"
	"github.com/noah-isme/accommodation-tracker/pkg/config"
	"github.com/noah-isme/accommodation-tracker/pkg/database"
	"github.com/noah-isme/accommodation-tracker/pkg/logger"
)

// @title Accommodation Tracker API
// @version 1.0.0
// @description Local API behind the 504/IEP accommodation tracker desktop app.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if err := database.Migrate(ctx, db, logr); err != nil {
		logr.Fatal("failed to migrate database", zap.Error(err))
	}

	router, err := app.NewRouter(cfg, db, logr, app.Options{})
	if err != nil {
		logr.Fatal("failed to build router", zap.Error(err))
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Warn("server shutdown failed", zap.Error(err))
		}
	}()

	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "driver", cfg.Database.Driver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
	logr.Info("server stopped")
}
