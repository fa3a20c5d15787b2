package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tannerdj/wokelens/internal/config"
	"github.com/tannerdj/wokelens/internal/logger"
	"github.com/tannerdj/wokelens/internal/repository"
	"github.com/tannerdj/wokelens/internal/scheduler"
	"github.com/tannerdj/wokelens/internal/service"
	"github.com/tannerdj/wokelens/internal/storage"
	"github.com/tannerdj/wokelens/internal/watch"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewDefault().WithField(logger.FieldComponent, "worker")
	defer logger.Sync()

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}
	photoRepo := repository.NewPhotoRepository(db)

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

	vlmService := service.NewVLMService(&service.VLMConfig{
		Model:     cfg.VLM.Model,
		APIKey:    cfg.VLM.APIKey,
		BaseURL:   cfg.VLM.BaseURL,
		MaxTokens: cfg.VLM.MaxTokens,
	})

	hub, err := watch.NewHub(&watch.HubConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatalf("Failed to initialize watch hub: %v", err)
	}
	defer hub.Close()

	analysisService := service.NewAnalysisService(photoRepo, objectStorage, vlmService, hub, appLogger)

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

	ctx, cancel := context.WithCancel(appLogger.WithContext(context.Background()))
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		appLogger.Info("Shutting down worker...")
		cancel()
	}()

	appLogger.Infof("Worker started, polling every %s", cfg.Analysis.PollInterval)
	trigger.Run(ctx, func(ctx context.Context, job scheduler.Job) {
		analysisService.DescribePhoto(ctx, job.PhotoID)
	})
	appLogger.Info("Worker exited")
}
