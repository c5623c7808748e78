package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - middleware для настройки Cross-Origin Resource Sharing.
// API только на чтение, поэтому разрешены GET и OPTIONS с любого origin.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,HEAD,OPTIONS",
		AllowHeaders:  "Content-Type,Accept,Accept-Language,X-Request-ID",
		ExposeHeaders: "X-Request-ID",
	})
}
