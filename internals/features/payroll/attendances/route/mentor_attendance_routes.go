// file: internals/features/payroll/attendances/route/mentor_attendance_routes.go
package route

import (
	"bimbel_backend/internals/constants"
	attendanceController "bimbel_backend/internals/features/payroll/attendances/controller"
	"bimbel_backend/internals/features/payroll/attendances/service"
	authMiddleware "bimbel_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

// AdminMentorAttendanceRoutes: /mentor-attendances (teacher, admin, owner). r sudah lewat AuthJWT.
func AdminMentorAttendanceRoutes(r fiber.Router, svc *service.AttendanceService) {
	ctl := attendanceController.NewMentorAttendanceController(svc)

	att := r.Group("/mentor-attendances",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorTeacher("kehadiran mentor"), constants.TeacherAndAbove),
	)
	{
		att.Post("/", ctl.Mark)
		att.Patch("/:id", ctl.Correct)
		att.Get("/", ctl.List)
	}
}
