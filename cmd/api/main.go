package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tannerdj/wokelens/internal/api"
	"github.com/tannerdj/wokelens/internal/config"
	"github.com/tannerdj/wokelens/internal/logger"
	"github.com/tannerdj/wokelens/internal/repository"
	"github.com/tannerdj/wokelens/internal/scheduler"
	"github.com/tannerdj/wokelens/internal/service"
	"github.com/tannerdj/wokelens/internal/storage"
	"github.com/tannerdj/wokelens/internal/watch"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewDefault()
	defer logger.Sync()

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	photoRepo := repository.NewPhotoRepository(db)
	triviaRepo := repository.NewTriviaRepository(db)

	// Seed the trivia reference tables once; subsequent starts are no-ops.
	ctx := context.Background()
	if err := triviaRepo.Seed(ctx); err != nil {
		appLogger.Fatalf("Failed to seed trivia tables: %v", err)
	}

	// Initialize storage (supports MinIO, R2, S3)
	objectStorage, err := storage.NewStorage(&storage.S3Config{
		Type:      storage.StorageType(cfg.Storage.Type),
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage: %v", err)
	}
	if err := objectStorage.EnsureBucket(ctx); err != nil {
		appLogger.Fatalf("Failed to ensure storage bucket: %v", err)
	}

	trigger, err := scheduler.NewRedisScheduler(&scheduler.RedisSchedulerConfig{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		Key:          cfg.Analysis.QueueKey,
		PollInterval: cfg.Analysis.PollInterval,
	})
	if err != nil {
		appLogger.Fatalf("Failed to initialize scheduler: %v", err)
	}
	defer trigger.Close()

	hub, err := watch.NewHub(&watch.HubConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatalf("Failed to initialize watch hub: %v", err)
	}
	defer hub.Close()

	madlibService := service.NewMadLibService(triviaRepo)

	router := api.SetupRouter(cfg, appLogger, photoRepo, objectStorage, trigger, hub, madlibService)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting API server on port %d (mode=%s)", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatalf("Server forced to shutdown: %v", err)
	}

	appLogger.Info("Server exited")
}
