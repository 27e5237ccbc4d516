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
	"rental-admin-backend/internal/api"
	"rental-admin-backend/internal/backend"
	"rental-admin-backend/internal/dashboard"
	"rental-admin-backend/internal/db"
	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/mw"
	"rental-admin-backend/internal/notification"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
	"rental-admin-backend/internal/store"

	"github.com/SherClockHolmes/webpush-go"
)

func main() {
	logger := log.New(os.Stdout, "rentadmin ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database, &model.PushSubscription{})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	appStore := store.NewGormStore(gormDB)
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var creds restclient.CredentialProvider = restclient.StaticToken(cfg.Backend.Token)
	if cfg.Backend.TokenEnv != "" {
		creds = restclient.EnvToken(cfg.Backend.TokenEnv)
	}
	rc := restclient.New(cfg.Backend, creds)
	qc := querycache.New(cfg.Cache.TTL, cfg.Cache.Cleanup)
	b := backend.New(rc, qc)
	logger.Printf("backend client targets %s", cfg.Backend.BaseURL)

	// Without VAPID keys outcomes only reach the in-session inbox.
	var push notification.Notifier
	var webpushOptions *webpush.Options
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions)
		pool.Start(ctx)
		push = pool
		logger.Printf("web push enabled with %d workers", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured; web push disabled")
	}

	dash := dashboard.New(b, cfg, push)

	router := api.NewRouter(api.NewHandler(dash, appStore, webpushOptions), cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: mw.CORS(cfg.Server.CorsAllowedOrigins)(router),
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}
	dash.Sessions.Close(shutdownCtx)
	dash.Overviews.Close()
	cancel()

	logger.Println("Server gracefully stopped")
}
