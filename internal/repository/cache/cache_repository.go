package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ParkingsKey - ключ снимка списка парковок
const ParkingsKey = "parkings:all"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return newCacheRepository(redis.Client(), redis.logger)
}

func newCacheRepository(client *redis.Client, logger *zap.Logger) *cacheRepository {
	return &cacheRepository{
		client: client,
		logger: logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// GetParkings получает снимок парковок из кеша
func (r *cacheRepository) GetParkings(ctx context.Context) ([]domain.Parking, error) {
	data, err := r.Get(ctx, ParkingsKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var parkings []domain.Parking
	if err := json.Unmarshal(data, &parkings); err != nil {
		r.logger.Error("Failed to unmarshal parkings from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal parkings: %w", err)
	}

	return parkings, nil
}

// SetParkings сохраняет снимок парковок в кеше
func (r *cacheRepository) SetParkings(ctx context.Context, parkings []domain.Parking, ttl time.Duration) error {
	data, err := json.Marshal(parkings)
	if err != nil {
		r.logger.Error("Failed to marshal parkings", zap.Error(err))
		return fmt.Errorf("marshal parkings: %w", err)
	}

	return r.Set(ctx, ParkingsKey, data, ttl)
}
