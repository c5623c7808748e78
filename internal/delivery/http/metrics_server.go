package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsServer - отдельный listener с /metrics и /healthz для процессов без API (воркер)
type MetricsServer struct {
	app    *fiber.App
	addr   string
	logger *zap.Logger
}

func NewMetricsServer(addr string, logger *zap.Logger) *MetricsServer {
	app := fiber.New(fiber.Config{
		AppName:               "Parking Worker Metrics",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return &MetricsServer{
		app:    app,
		addr:   addr,
		logger: logger,
	}
}

func (s *MetricsServer) App() *fiber.App {
	return s.app
}

func (s *MetricsServer) Start() error {
	s.logger.Info("Starting metrics server", zap.String("address", s.addr))
	return s.app.Listen(s.addr)
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
