package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"bimbel_backend/internals/configs"
	"bimbel_backend/internals/middlewares/logger"
)

// SetupMiddlewares: middleware global (urutan penting: recover paling luar)
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	if configs.GetEnv("RATE_LIMIT_DISABLED") != "true" {
		app.Use(GlobalRateLimiter())
	}
}
