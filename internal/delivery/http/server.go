package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/delivery/http/handler"
	"github.com/parking-microservice/internal/delivery/http/middleware"
	apperrors "github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	parkingHandler *handler.ParkingHandler

	healthChecks map[string]HealthCheck
}

// HealthCheck проверяет доступность зависимости, например Redis
type HealthCheck func(ctx context.Context) error

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	parkingHandler *handler.ParkingHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Parking Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		parkingHandler: parkingHandler,
		healthChecks:   make(map[string]HealthCheck),
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if s.config.Metrics.Enabled {
		s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Health check
	s.app.Get("/api/v1/health", s.health)

	// Parking routes
	parkings := s.app.Group("/api/parkings")
	parkings.Get("/", s.parkingHandler.GetAllParkings)
	parkings.Get("/nearby", s.parkingHandler.GetParkingsNearby)
}

// AddHealthCheck регистрирует проверку, результат которой попадает в /api/v1/health.
// Вызывать до Start.
func (s *Server) AddHealthCheck(name string, check HealthCheck) {
	s.healthChecks[name] = check
}

func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	checks := make(map[string]string, len(s.healthChecks))
	for name, check := range s.healthChecks {
		if err := check(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("check", name), zap.Error(err))
			checks[name] = err.Error()
			status = "degraded"
			continue
		}
		checks[name] = "ok"
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
		"time":   time.Now(),
	})
}

// App returns the underlying fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
			return utils.SendError(c, err)
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: apperrors.New(statusCode(code), err.Error(), code),
		})
	}
}

func statusCode(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return apperrors.ErrNotFound.Code
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return apperrors.ErrValidation.Code
	}
}
