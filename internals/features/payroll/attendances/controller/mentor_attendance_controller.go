// file: internals/features/payroll/attendances/controller/mentor_attendance_controller.go
package controller

import (
	"strconv"
	"strings"

	"bimbel_backend/internals/features/payroll/attendances/dto"
	"bimbel_backend/internals/features/payroll/attendances/service"
	"bimbel_backend/internals/features/payroll/errs"
	helper "bimbel_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MentorAttendanceController struct {
	Service   *service.AttendanceService
	Validator *validator.Validate
}

func NewMentorAttendanceController(svc *service.AttendanceService) *MentorAttendanceController {
	return &MentorAttendanceController{
		Service:   svc,
		Validator: helper.NewValidator(),
	}
}

// POST /mentor-attendances (idempotent per slot)
func (ctl *MentorAttendanceController) Mark(c *fiber.Ctx) error {
	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.BodyParseError(c)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	row, created, err := ctl.Service.Mark(c.UserContext(), req.ToInput())
	if err != nil {
		return errs.Respond(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Kehadiran tercatat", dto.FromModel(row))
	}
	return helper.JsonOK(c, "Kehadiran sudah tercatat sebelumnya", dto.FromModel(row))
}

// PATCH /mentor-attendances/:id
func (ctl *MentorAttendanceController) Correct(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return errs.Respond(c, errs.Invalid("id", "harus UUID valid"))
	}

	var req dto.CorrectAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.BodyParseError(c)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	row, err := ctl.Service.Correct(c.UserContext(), id, req.ToInput())
	if err != nil {
		return errs.Respond(c, err)
	}
	return helper.JsonUpdated(c, "Kehadiran diperbarui", dto.FromModel(row))
}

// GET /mentor-attendances?mentor_id=&month=&year=&page=&per_page=
func (ctl *MentorAttendanceController) List(c *fiber.Ctx) error {
	mentorID, err := uuid.Parse(strings.TrimSpace(c.Query("mentor_id")))
	if err != nil {
		return errs.Respond(c, errs.Invalid("mentor_id", "harus UUID valid"))
	}
	month, errM := strconv.Atoi(strings.TrimSpace(c.Query("month")))
	year, errY := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if errM != nil || errY != nil {
		fields := map[string][]string{}
		if errM != nil {
			fields["month"] = []string{"wajib angka"}
		}
		if errY != nil {
			fields["year"] = []string{"wajib angka"}
		}
		return errs.Respond(c, errs.InvalidFields(fields))
	}

	p := helper.ParseFiber(c, "date", "asc", helper.DefaultOpts)
	rows, total, err := ctl.Service.ListForPeriod(c.UserContext(), mentorID, month, year, p.Offset(), p.Limit())
	if err != nil {
		return errs.Respond(c, err)
	}
	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "ok", dto.FromModels(rows), &meta)
}
