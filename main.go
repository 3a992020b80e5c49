package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/perkola/ty-fighter/internal/config"
	"github.com/perkola/ty-fighter/internal/database"
	"github.com/perkola/ty-fighter/internal/game"
	server "github.com/perkola/ty-fighter/internal/http"
	"github.com/perkola/ty-fighter/internal/identity"
	"github.com/perkola/ty-fighter/internal/metrics"
	"github.com/perkola/ty-fighter/internal/stats"
	"github.com/perkola/ty-fighter/internal/texts"
	"github.com/perkola/ty-fighter/internal/ws"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	if _, err := texts.Seed(context.Background(), db); err != nil {
		log.Error("Failed to seed race texts, fallback text will be used", "error", err)
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	identityStore := identity.New(db)
	statsStore := stats.New(db)
	textsProvider := texts.New(db)

	orchestrator := game.NewOrchestrator(game.NewStore(), textsProvider, statsStore, metricsSvc)
	hub := ws.NewHub(orchestrator, metricsSvc, cfg.AllowedOrigin)

	s := server.NewServer(
		identityStore,
		statsStore,
		metricsSvc,
		metricsHandler,
		hub,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Close live game connections before the listener goes away.
		hub.Shutdown()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
