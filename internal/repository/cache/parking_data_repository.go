package cache

import (
	"context"
	"time"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/observability"
	"go.uber.org/zap"
)

type cachedParkingDataRepository struct {
	inner     repository.ParkingDataRepository
	cacheRepo repository.CacheRepository
	ttl       time.Duration
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewCachedParkingDataRepository оборачивает источник данных кешем по фиксированному ключу.
//
// Empty results are never stored. Cache failures are logged and the call falls
// through to the inner repository, so the no-error contract of FetchParkings holds.
func NewCachedParkingDataRepository(
	inner repository.ParkingDataRepository,
	cacheRepo repository.CacheRepository,
	ttl time.Duration,
	metrics *observability.Metrics,
	logger *zap.Logger,
) repository.ParkingDataRepository {
	return &cachedParkingDataRepository{
		inner:     inner,
		cacheRepo: cacheRepo,
		ttl:       ttl,
		metrics:   metrics,
		logger:    logger,
	}
}

func (r *cachedParkingDataRepository) FetchParkings(ctx context.Context) []domain.Parking {
	// 1. Проверяем кеш
	cached, err := r.cacheRepo.GetParkings(ctx)
	switch {
	case err != nil:
		r.metrics.CacheLookups.WithLabelValues(observability.CacheError).Inc()
		r.logger.Warn("Failed to get parkings from cache", zap.Error(err))
	case len(cached) > 0:
		r.metrics.CacheLookups.WithLabelValues(observability.CacheHit).Inc()
		r.logger.Debug("Parkings fetched from cache", zap.Int("count", len(cached)))
		return cached
	default:
		r.metrics.CacheLookups.WithLabelValues(observability.CacheMiss).Inc()
	}

	// 2. Идём в источник
	parkings := r.inner.FetchParkings(ctx)
	if len(parkings) == 0 {
		return parkings
	}

	// 3. Кешируем; ошибка кеша не влияет на ответ
	if err := r.cacheRepo.SetParkings(ctx, parkings, r.ttl); err != nil {
		r.logger.Warn("Failed to cache parkings", zap.Error(err))
	}

	return parkings
}
