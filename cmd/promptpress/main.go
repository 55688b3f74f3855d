// Package main is the entry point for the PromptPress server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"promptpress/internal/ai"
	"promptpress/internal/cache"
	"promptpress/internal/config"
	"promptpress/internal/database"
	"promptpress/internal/generator"
	"promptpress/internal/handlers"
	"promptpress/internal/photos"
	"promptpress/internal/router"
	"promptpress/internal/store"
)

func main() {
	// Load .env when present; real environment variables win. Loaded before
	// logger setup so APP_ENV from .env picks the handler.
	_ = godotenv.Load()

	// Structured logger — outputs JSON in production, text in development.
	var logHandler slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	if os.Getenv("APP_ENV") == "production" {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	slog.SetDefault(slog.New(logHandler))

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible response cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()
	responseCache := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)

	// Initialize data stores.
	st := store.New(db)

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, cfg.Providers)
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// Initialize the photo search client. Without an API key every lookup
	// falls back to the default article image.
	photoClient := photos.New(cfg.PexelsAPIKey, cfg.PexelsBaseURL)

	// Build the article generation pipeline.
	gen := generator.New(st, aiRegistry, photoClient, cfg.AIMaxTokens)

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(st, gen, aiRegistry, responseCache)
	publicHandlers := handlers.NewPublic(st, responseCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(st.Tenants, adminHandlers, publicHandlers)

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate generation requests that wait on LLM
	// responses (typically 10-30s per article, more for batches).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
