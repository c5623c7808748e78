package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/observability"
)

// MockParkingDataRepository is a mock of ParkingDataRepository
type MockParkingDataRepository struct {
	mock.Mock
}

func (m *MockParkingDataRepository) FetchParkings(ctx context.Context) []domain.Parking {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Parking)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) GetParkings(ctx context.Context) ([]domain.Parking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Parking), args.Error(1)
}

func (m *MockCacheRepository) SetParkings(ctx context.Context, parkings []domain.Parking, ttl time.Duration) error {
	return m.Called(ctx, parkings, ttl).Error(0)
}

const (
	interval = time.Minute
	ttl      = 2 * time.Minute
)

var sample = []domain.Parking{{ID: "1", Name: "Parking Centre", Status: domain.ParkingStatusUnknown}}

func TestCacheRefreshWorker_RefreshesOnStartAndEveryTick(t *testing.T) {
	source := new(MockParkingDataRepository)
	cacheRepo := new(MockCacheRepository)
	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewFakeClock()

	source.On("FetchParkings", mock.Anything).Return(sample)

	writes := make(chan struct{}, 10)
	cacheRepo.On("SetParkings", mock.Anything, sample, ttl).
		Return(nil).
		Run(func(mock.Arguments) { writes <- struct{}{} })

	w := NewCacheRefreshWorker(source, cacheRepo, interval, ttl, metrics, zap.NewNop(), WithClock(clock))

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	waitWrite(t, writes)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(interval)
	waitWrite(t, writes)

	clock.Advance(interval)
	waitWrite(t, writes)

	require.NoError(t, w.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.CacheRefreshes.WithLabelValues(observability.OutcomeSuccess)))
	cacheRepo.AssertNumberOfCalls(t, "SetParkings", 3)
}

func TestCacheRefreshWorker_EmptyResultKeepsCache(t *testing.T) {
	source := new(MockParkingDataRepository)
	cacheRepo := new(MockCacheRepository)
	metrics := observability.NewMetricsForTesting()

	source.On("FetchParkings", mock.Anything).Return([]domain.Parking{})

	w := NewCacheRefreshWorker(source, cacheRepo, interval, ttl, metrics, zap.NewNop())
	w.refresh(context.Background())

	cacheRepo.AssertNotCalled(t, "SetParkings", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheRefreshes.WithLabelValues(observability.OutcomeEmpty)))
}

func TestCacheRefreshWorker_CacheErrorIsCounted(t *testing.T) {
	source := new(MockParkingDataRepository)
	cacheRepo := new(MockCacheRepository)
	metrics := observability.NewMetricsForTesting()

	source.On("FetchParkings", mock.Anything).Return(sample)
	cacheRepo.On("SetParkings", mock.Anything, sample, ttl).Return(errors.New("connection refused"))

	w := NewCacheRefreshWorker(source, cacheRepo, interval, ttl, metrics, zap.NewNop())
	w.refresh(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheRefreshes.WithLabelValues(observability.OutcomeError)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.CacheRefreshes.WithLabelValues(observability.OutcomeSuccess)))
}

func TestCacheRefreshWorker_StopsOnContextCancel(t *testing.T) {
	source := new(MockParkingDataRepository)
	cacheRepo := new(MockCacheRepository)
	source.On("FetchParkings", mock.Anything).Return([]domain.Parking{})

	w := NewCacheRefreshWorker(source, cacheRepo, interval, ttl,
		observability.NewMetricsForTesting(), zap.NewNop(), WithClock(clockwork.NewFakeClock()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func waitWrite(t *testing.T, writes <-chan struct{}) {
	t.Helper()
	select {
	case <-writes:
	case <-time.After(time.Second):
		t.Fatal("cache was not refreshed")
	}
}
