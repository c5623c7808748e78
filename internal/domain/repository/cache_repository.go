package repository

import (
	"context"
	"time"

	"github.com/parking-microservice/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; (nil, nil) при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// GetParkings получает снимок списка парковок; (nil, nil) при промахе
	GetParkings(ctx context.Context) ([]domain.Parking, error)

	// SetParkings сохраняет снимок списка парковок
	SetParkings(ctx context.Context, parkings []domain.Parking, ttl time.Duration) error
}
