package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parking-microservice/internal/config"
	httpDelivery "github.com/parking-microservice/internal/delivery/http"
	"github.com/parking-microservice/internal/infrastructure/poitiers"
	"github.com/parking-microservice/internal/observability"
	"github.com/parking-microservice/internal/pkg/logger"
	"github.com/parking-microservice/internal/repository/cache"
	"github.com/parking-microservice/internal/worker"
	"github.com/parking-microservice/internal/worker/refresh"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Parking Cache Refresh Worker")
	log.Info("Configuration loaded",
		zap.Duration("refresh_interval", cfg.Worker.RefreshInterval),
		zap.Duration("cache_ttl", cfg.Cache.ParkingsTTL))

	if cfg.Cache.ParkingsTTL <= cfg.Worker.RefreshInterval {
		log.Warn("Cache TTL is not longer than the refresh interval, the cache may expire between refreshes")
	}

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	metrics := observability.NewMetrics()

	var metricsServer *httpDelivery.MetricsServer
	if cfg.Metrics.Enabled {
		metricsServer = httpDelivery.NewMetricsServer(cfg.GetWorkerMetricsAddr(), log)
		go func() {
			if err := metricsServer.Start(); err != nil {
				log.Error("Metrics server stopped", zap.Error(err))
			}
		}()
	}

	// 4. Воркер пишет в кэш напрямую из адаптера
	source := poitiers.NewParkingClient(&cfg.Source, metrics, log)
	cacheRepo := cache.NewCacheRepository(redisClient)

	refreshWorker := refresh.NewCacheRefreshWorker(
		source,
		cacheRepo,
		cfg.Worker.RefreshInterval,
		cfg.Cache.ParkingsTTL,
		metrics,
		log,
	)

	// 5. Worker manager
	workerManager := worker.NewWorkerManager(30*time.Second, log)
	workerManager.Register(refreshWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Metrics server shutdown error", zap.Error(err))
		}
	}

	log.Info("Worker shutdown complete")
}
