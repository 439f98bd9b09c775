// file: internals/features/payroll/salaries/route/salary_routes.go
package route

import (
	"bimbel_backend/internals/constants"
	salaryController "bimbel_backend/internals/features/payroll/salaries/controller"
	"bimbel_backend/internals/features/payroll/salaries/service"
	helperOSS "bimbel_backend/internals/helpers/oss"
	"bimbel_backend/internals/middlewares"
	authMiddleware "bimbel_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

// FinanceSalaryRoutes: /salaries (accountant + owner). r sudah lewat AuthJWT.
func FinanceSalaryRoutes(r fiber.Router, svc *service.SalaryService, blob helperOSS.BlobService, proofDir string) {
	ctl := salaryController.NewSalaryController(svc, blob, proofDir)

	salaries := r.Group("/salaries",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorFinance("gaji mentor"), constants.FinanceRoles),
	)
	{
		salaries.Get("/", ctl.List)
		salaries.Get("/export", ctl.Export)
		salaries.Get("/sync", ctl.ComputeSync)
		salaries.Get("/mentor/:mentor_id", ctl.ListForMentor)
		salaries.Get("/:id", ctl.Detail)
		salaries.Get("/:id/sync", ctl.CheckSync)

		salaries.Post("/draft", ctl.UpsertDraft)
		salaries.Post("/:id/pay", middlewares.PaymentRateLimiter(), ctl.Pay)
		salaries.Post("/:id/recalculate", ctl.Recalculate)
	}
}
