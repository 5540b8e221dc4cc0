package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xelth-com/goodstrack/internal/app"
	"github.com/xelth-com/goodstrack/internal/config"
	"github.com/xelth-com/goodstrack/internal/handlers"
	"github.com/xelth-com/goodstrack/internal/logger"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	if cfg.JWTSecret == "" {
		zl.Fatal("JWT_SECRET is not set")
	}

	// 2. Local store, remote backend and services
	ctx := context.Background()
	a, err := app.New(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("Failed to initialize", zap.Error(err))
	}

	// 3. Startup sync
	if cfg.Sync.PullOnStartup {
		if _, err := a.Sync.PullAll(ctx); err != nil {
			zl.Warn("⚠️ Startup pull aborted", zap.Error(err))
		}
	}
	if cfg.Sync.PushOnStartup {
		if _, err := a.Sync.PushAll(ctx); err != nil {
			zl.Warn("⚠️ Startup push aborted", zap.Error(err))
		}
	}
	if cfg.Sync.AutoSyncEnabled {
		a.Sync.Start()
	}

	// 4. Set up HTTP router
	router := handlers.NewRouter(handlers.Services{
		Parcels: a.Parcels,
		Users:   a.Users,
		Reports: a.Reports,
		Sync:    a.Sync,
	}, cfg.JWTSecret, zl)

	// 5. Start server with graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		zl.Info("🚀 Server starting",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.NodeEnv),
			zap.Bool("remote", a.Remote.Configured()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	sig := <-shutdown
	zl.Warn("⚠️ Received signal, shutting down gracefully", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("HTTP server shutdown error", zap.Error(err))
	}

	// Stops the sync loop and closes the database (this also stops embedded PostgreSQL)
	a.Close()

	zl.Info("✅ Shutdown complete")
}
