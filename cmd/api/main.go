package main

// @title Parking Microservice API
// @version 1.0.0
// @description Свободные места на парковках Grand Poitiers в реальном времени и поиск ближайших парковок.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/parking-microservice/docs/swagger"
	"github.com/parking-microservice/internal/config"
	httpDelivery "github.com/parking-microservice/internal/delivery/http"
	"github.com/parking-microservice/internal/delivery/http/handler"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/infrastructure/poitiers"
	"github.com/parking-microservice/internal/observability"
	"github.com/parking-microservice/internal/pkg/logger"
	"github.com/parking-microservice/internal/repository/cache"
	"github.com/parking-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Parking Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("source_url", cfg.Source.URL),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	metrics := observability.NewMetrics()

	// 3. Upstream adapter
	var parkingRepo repository.ParkingDataRepository = poitiers.NewParkingClient(&cfg.Source, metrics, log)

	// 4. Redis cache (optional). Без Redis сервис работает напрямую с источником.
	var redisClient *cache.Redis
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, serving parkings without cache", zap.Error(err))
		} else {
			cacheRepo := cache.NewCacheRepository(redisClient)
			parkingRepo = cache.NewCachedParkingDataRepository(parkingRepo, cacheRepo, cfg.Cache.ParkingsTTL, metrics, log)
			log.Info("Parkings cache enabled", zap.Duration("ttl", cfg.Cache.ParkingsTTL))
		}
	}

	// 5. Use cases and handlers
	parkingUC := usecase.NewParkingUseCase(parkingRepo, log)
	parkingHandler := handler.NewParkingHandler(parkingUC, cfg.Nearby.DefaultRadiusKm, log)

	// 6. HTTP server
	server := httpDelivery.NewServer(cfg, log, parkingHandler)
	if redisClient != nil {
		server.AddHealthCheck("redis", redisClient.Health)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
