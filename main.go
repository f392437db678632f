// Package main runs the quote scanner service: it wires the application from
// environment configuration, starts the background scanner and serves the
// JSON API until interrupted.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nse-screener/config"
	"nse-screener/internal/api"
	"nse-screener/internal/app"
	"nse-screener/observability"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	observability.InitLoggerWithLevel(cfg.IsProduction(), observability.ParseLevel(cfg.Server.LogLevel))
	observability.InitMetrics()

	application, err := app.New(cfg)
	if err != nil {
		observability.Fatal("failed to build application", "error", err)
	}

	// Start the scanner; the first scan cycle completes before the server
	// accepts requests
	ctx := context.Background()
	if err := application.Startup(ctx); err != nil {
		observability.Fatal("failed to start scanner", "error", err)
	}

	// Create HTTP router
	handler := api.NewHandler(application, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Start server in goroutine
	go func() {
		observability.Info("starting server",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"scan_interval", cfg.ScanInterval())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			observability.Fatal("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	observability.Info("shutting down...")

	// Graceful shutdown: stop the scanner first so no new cycle starts, then
	// drain the server, both within the configured budget
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	application.Shutdown(shutdownCtx)

	if err := server.Shutdown(shutdownCtx); err != nil {
		observability.Error("server forced to shutdown", "error", err)
	}

	observability.Info("server stopped")
}
