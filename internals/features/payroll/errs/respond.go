package errs

import (
	"log"

	helper "bimbel_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

const HintUseRecalculate = "Gaji sudah PAID. Gunakan POST /salaries/:id/recalculate untuk menyegarkan jumlah sesi."

// Respond memetakan error service payroll → response JSON standar.
func Respond(c *fiber.Ctx, err error) error {
	switch {
	case err == nil:
		return nil
	case IsValidation(err):
		if f := Fields(err); f != nil {
			return helper.JsonValidationError(c, f)
		}
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case IsNotFound(err):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case IsConflict(err):
		return helper.JsonErrorWithHint(c, fiber.StatusConflict, err.Error(), HintUseRecalculate)
	case helper.IsUniqueViolation(err):
		return helper.JsonError(c, fiber.StatusConflict, "Data sudah ada (duplikat)")
	case IsUpstream(err):
		log.Printf("[ERROR] payroll upstream: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Sumber data sedang bermasalah, coba lagi")
	default:
		log.Printf("[ERROR] payroll: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
}
