package poitiers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/observability"
	"go.uber.org/zap"
)

const maxErrorBodyBytes = 1024

type client struct {
	httpClient *http.Client
	url        string
	metrics    *observability.Metrics
	clock      clockwork.Clock
	logger     *zap.Logger
}

// Option настраивает клиент (в основном для тестов)
type Option func(*client)

// WithClock подменяет источник времени для замера длительности запросов
func WithClock(clock clockwork.Clock) Option {
	return func(c *client) {
		c.clock = clock
	}
}

// WithHTTPClient подменяет HTTP клиент
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// NewParkingClient создает адаптер к открытым данным о парковках Grand Poitiers
func NewParkingClient(
	cfg *config.SourceConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
	opts ...Option,
) repository.ParkingDataRepository {
	c := &client{
		httpClient: newHTTPClient(cfg.ConnectTimeout, cfg.ReadTimeout),
		url:        cfg.URL,
		metrics:    metrics,
		clock:      clockwork.NewRealClock(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newHTTPClient ограничивает установку соединения и ожидание ответа по отдельности;
// общий Timeout покрывает чтение тела.
func newHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = connectTimeout
	transport.ResponseHeaderTimeout = readTimeout

	return &http.Client{
		Transport: transport,
		Timeout:   connectTimeout + readTimeout,
	}
}

// FetchParkings загружает все парковки из источника.
// Любая ошибка запроса или разбора даёт пустой список.
func (c *client) FetchParkings(ctx context.Context) []domain.Parking {
	start := c.clock.Now()
	defer func() {
		c.metrics.UpstreamFetchDuration.Observe(c.clock.Since(start).Seconds())
	}()

	c.logger.Info("Fetching parkings from Poitiers data source", zap.String("url", c.url))

	resp, err := c.fetch(ctx)
	if err != nil {
		c.logger.Error("Error fetching parkings from Poitiers API", zap.Error(err))
		c.metrics.UpstreamFetches.WithLabelValues(observability.OutcomeError).Inc()
		return []domain.Parking{}
	}

	if resp == nil || resp.Results == nil {
		c.logger.Warn("No data received from Poitiers API")
		c.metrics.UpstreamFetches.WithLabelValues(observability.OutcomeEmpty).Inc()
		return []domain.Parking{}
	}

	parkings := make([]domain.Parking, 0, len(resp.Results))
	for _, data := range resp.Results {
		parking, geoOK := toParking(data)
		if !geoOK {
			c.logger.Warn("Failed to parse geopoint",
				zap.String("parking_id", parking.ID),
				zap.String("geopoint", selectGeopoint(data)))
			c.metrics.MalformedGeopoints.Inc()
		}
		parkings = append(parkings, parking)
	}

	c.metrics.RecordsMapped.Add(float64(len(parkings)))
	c.metrics.UpstreamFetches.WithLabelValues(observability.OutcomeSuccess).Inc()

	c.logger.Debug("Parkings fetched",
		zap.Int("count", len(parkings)),
		zap.Duration("elapsed", c.clock.Since(start)))

	return parkings
}

func (c *client) fetch(ctx context.Context) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("poitiers API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var apiResp *apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return apiResp, nil
}
