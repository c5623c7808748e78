package http

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/observability"
)

func TestMetricsServer_ExposesRefreshCounter(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	prometheus.MustRegister(metrics.CacheRefreshes)
	t.Cleanup(func() { prometheus.Unregister(metrics.CacheRefreshes) })

	metrics.CacheRefreshes.WithLabelValues(observability.OutcomeSuccess).Inc()

	s := NewMetricsServer("127.0.0.1:0", zap.NewNop())

	resp, err := s.App().Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `parking_cache_refreshes_total{outcome="success"} 1`)
}

func TestMetricsServer_Healthz(t *testing.T) {
	s := NewMetricsServer("127.0.0.1:0", zap.NewNop())

	resp, err := s.App().Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
