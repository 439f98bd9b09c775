// file: internals/route/details/payroll_routes.go
package details

import (
	"bimbel_backend/internals/features/payroll"
	attendanceRoute "bimbel_backend/internals/features/payroll/attendances/route"
	salaryRoute "bimbel_backend/internals/features/payroll/salaries/route"
	helperOSS "bimbel_backend/internals/helpers/oss"

	"github.com/gofiber/fiber/v2"
)

// PayrollFinanceRoutes: gaji mentor (draft, bayar, rekalkulasi, laporan)
func PayrollFinanceRoutes(r fiber.Router, m *payroll.Module, blob helperOSS.BlobService, proofDir string) {
	salaryRoute.FinanceSalaryRoutes(r, m.Salaries, blob, proofDir)
}

// PayrollAttendanceRoutes: pencatatan kehadiran mentor
func PayrollAttendanceRoutes(r fiber.Router, m *payroll.Module) {
	attendanceRoute.AdminMentorAttendanceRoutes(r, m.Attendance)
}
