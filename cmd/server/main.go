// Package main is the entry point for the EWERS (Early Warning Early
// Response System) backend server. It provides a REST API over an in-memory
// store of incidents, call logs, alerts, social trends, response plans and
// users, a WebSocket channel that pushes incident and alert changes to the
// dashboard, and an AI proxy for chat and analysis.
//
// State lives in process memory and is lost on restart. Sessions may be
// kept in Redis when REDIS_URL is set.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/config"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/handlers"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/realtime"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/services"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/store"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	logger, _ := zap.NewProduction()
	if !cfg.IsProduction() {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	sugar.Infow("Starting EWERS server",
		"port", cfg.Port,
		"env", cfg.Environment,
		"ai_enabled", cfg.OpenAIKey != "",
	)

	// Background workers stop when this is cancelled
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	// Session backend
	var sessions services.SessionStore
	if cfg.RedisURL != "" {
		rs, err := services.NewRedisSessionStore(cfg.RedisURL)
		if err != nil {
			sugar.Fatalf("Failed to configure Redis sessions: %v", err)
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rs.Ping(pingCtx); err != nil {
			sugar.Warnw("Redis not reachable yet; readiness will report it", "error", err)
		}
		cancel()
		defer rs.Close()
		sessions = rs
	} else {
		ms := services.NewMemorySessionStore()
		go ms.Start(workerCtx, 5*time.Minute, sugar)
		sessions = ms
	}

	// Initialize store and services
	st := store.New()
	auth := services.NewAuthService(st, sessions, cfg.SessionSecret, cfg.SessionTTL, cfg.PasswordHashing, sugar)
	if cfg.SeedData {
		if err := store.Seed(st, auth.EncodePassword); err != nil {
			sugar.Fatalf("Failed to seed data: %v", err)
		}
		sugar.Infow("Demo data loaded", "incidents", st.Incidents.Len(), "admin", store.DefaultAdminUsername)
	}

	ai := services.NewAIService(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.AITimeout, sugar)
	if !ai.Enabled() {
		sugar.Info("OPENAI_API_KEY not set; AI endpoints answer in fallback mode")
	}

	hub := realtime.NewHub(sugar)

	// Start demo feed simulator
	var sim *services.Simulator
	if cfg.SimulatorSchedule != "" {
		sim = services.NewSimulator(st, hub, time.Now().UnixNano(), sugar)
		if err := sim.Start(cfg.SimulatorSchedule); err != nil {
			sugar.Fatalf("Failed to start simulator: %v", err)
		}
	}

	router := handlers.NewRouter(handlers.Deps{
		Config: cfg,
		Logger: logger,
		Store:  st,
		Auth:   auth,
		AI:     ai,
		Hub:    hub,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// leaves room for the AI deadline
		WriteTimeout: cfg.AITimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sugar.Infof("Server listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	sugar.Info("Shutting down gracefully...")

	stopWorkers()
	if sim != nil {
		sim.Stop()
	}
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		sugar.Fatalf("Forced shutdown: %v", err)
	}

	sugar.Info("Server stopped")
}
