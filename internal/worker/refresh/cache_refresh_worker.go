package refresh

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/observability"
	"github.com/parking-microservice/internal/worker"
	"go.uber.org/zap"
)

const workerName = "parkings-cache-refresh"

// CacheRefreshWorker периодически забирает парковки из источника и перезаписывает кэш,
// чтобы запросы API обслуживались из тёплого кэша.
type CacheRefreshWorker struct {
	*worker.BaseWorker
	source    repository.ParkingDataRepository
	cacheRepo repository.CacheRepository
	interval  time.Duration
	ttl       time.Duration
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

type Option func(*CacheRefreshWorker)

// WithClock подменяет источник времени тикера
func WithClock(clock clockwork.Clock) Option {
	return func(w *CacheRefreshWorker) {
		w.clock = clock
	}
}

// NewCacheRefreshWorker - source должен быть самим адаптером, а не кэширующей обёрткой
func NewCacheRefreshWorker(
	source repository.ParkingDataRepository,
	cacheRepo repository.CacheRepository,
	interval time.Duration,
	ttl time.Duration,
	metrics *observability.Metrics,
	logger *zap.Logger,
	opts ...Option,
) *CacheRefreshWorker {
	w := &CacheRefreshWorker{
		BaseWorker: worker.NewBaseWorker(workerName, logger),
		source:     source,
		cacheRepo:  cacheRepo,
		interval:   interval,
		ttl:        ttl,
		metrics:    metrics,
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start обновляет кэш сразу и затем на каждом тике
func (w *CacheRefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting cache refresh worker",
		zap.Duration("interval", w.interval),
		zap.Duration("ttl", w.ttl))

	w.refresh(ctx)

	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.Chan():
			w.refresh(ctx)
		}
	}
}

func (w *CacheRefreshWorker) refresh(ctx context.Context) {
	logger := w.Logger()

	parkings := w.source.FetchParkings(ctx)
	if len(parkings) == 0 {
		// пустой ответ не затирает последний удачный снимок
		w.metrics.CacheRefreshes.WithLabelValues(observability.OutcomeEmpty).Inc()
		logger.Warn("Upstream returned no parkings, cache left untouched")
		return
	}

	if err := w.cacheRepo.SetParkings(ctx, parkings, w.ttl); err != nil {
		w.metrics.CacheRefreshes.WithLabelValues(observability.OutcomeError).Inc()
		logger.Error("Failed to refresh parkings cache", zap.Error(err))
		return
	}

	w.metrics.CacheRefreshes.WithLabelValues(observability.OutcomeSuccess).Inc()
	logger.Debug("Parkings cache refreshed", zap.Int("count", len(parkings)))
}
