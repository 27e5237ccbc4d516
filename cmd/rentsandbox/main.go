package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental-admin-backend/config"
	"rental-admin-backend/internal/db"
	"rental-admin-backend/internal/mw"
	"rental-admin-backend/internal/sandbox"
	"rental-admin-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "rentsandbox ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	gormDB, err := db.Init(&cfg.Database, store.Models()...)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	rentals := store.NewRentals(gormDB)

	if err := sandbox.Seed(context.Background(), rentals); err != nil {
		logger.Fatalf("failed to seed sandbox data: %v", err)
	}

	srv := sandbox.New(rentals, sandbox.Options{
		AllowBackwardDamage: cfg.Workflow.AllowBackwardDamageTransitions,
	})
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Sandbox.Port),
		Handler: mw.CORS(cfg.Server.CorsAllowedOrigins)(sandbox.NewRouter(srv)),
	}

	go func() {
		logger.Printf("sandbox backend listening on port %d", cfg.Sandbox.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}
	logger.Println("sandbox stopped")
}
