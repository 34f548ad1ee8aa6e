package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskbot-api/internal/config"
	"github.com/yukikurage/taskbot-api/internal/database"
	"github.com/yukikurage/taskbot-api/internal/logger"
	"github.com/yukikurage/taskbot-api/internal/server"
	"github.com/yukikurage/taskbot-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Server.LogLevel, cfg.Server.LogFormat)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	if cfg.Auth.UsesDefaultSecret() && cfg.Server.GinMode == gin.ReleaseMode {
		slog.Warn("SECRET_KEY is the development default; set a real secret in production")
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize AI generator; nil leaves the chatbot unconfigured
	generator, err := services.NewTextGenerator(context.Background(), cfg.AI)
	if err != nil {
		slog.Error("Failed to initialize AI generator", "provider", cfg.AI.Provider, "error", err)
		os.Exit(1)
	}
	if generator == nil {
		slog.Warn("AI chatbot disabled", "missing", cfg.AI.APIKeyName())
	}

	r, err := server.New(cfg, db, generator)
	if err != nil {
		slog.Error("Failed to build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "addr", srv.Addr, "version", cfg.Server.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exited")
}
