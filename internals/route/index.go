// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"bimbel_backend/internals/configs"
	"bimbel_backend/internals/features/payroll"
	helperOSS "bimbel_backend/internals/helpers/oss"
	authMiddleware "bimbel_backend/internals/middlewares/auth"
	routeDetails "bimbel_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var startTime time.Time

// Deps: dependency eksternal yang dirakit di main (rdb & blob boleh nil).
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Blob   helperOSS.BlobService
	Config configs.Config
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d.DB)

	module := payroll.NewModule(d.DB, d.Redis, d.Config.MentorCacheTTL)

	auth := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              d.Config.JWTSecret,
		AllowCookieFallback: true,
	})

	// ===================== FINANCE (accountant + owner) =====================
	log.Println("[INFO] Setting up FINANCE group...")
	finance := app.Group("/api/finance", auth)
	routeDetails.PayrollFinanceRoutes(finance, module, d.Blob, d.Config.ProofDir)

	// ===================== ADMIN (teacher, admin, owner) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", auth)
	routeDetails.PayrollAttendanceRoutes(admin, module)
}
