// file: internals/features/payroll/salaries/controller/salary_controller.go
package controller

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"bimbel_backend/internals/features/payroll/errs"
	"bimbel_backend/internals/features/payroll/salaries/dto"
	"bimbel_backend/internals/features/payroll/salaries/service"
	helper "bimbel_backend/internals/helpers"
	helperOSS "bimbel_backend/internals/helpers/oss"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SalaryController struct {
	Service   *service.SalaryService
	Blob      helperOSS.BlobService // nil = upload file dimatikan (hanya proof_image teks)
	ProofDir  string
	Validator *validator.Validate
}

func NewSalaryController(svc *service.SalaryService, blob helperOSS.BlobService, proofDir string) *SalaryController {
	return &SalaryController{
		Service:   svc,
		Blob:      blob,
		ProofDir:  strings.Trim(proofDir, "/"),
		Validator: helper.NewValidator(),
	}
}

// whitelist sort_by → kolom
var salarySortColumns = map[string]string{
	"created_at":   "mentor_salary_created_at",
	"updated_at":   "mentor_salary_updated_at",
	"total_amount": "mentor_salary_total_amount",
	"month":        "mentor_salary_month",
	"year":         "mentor_salary_year",
}

/* ===================== helpers ===================== */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, errs.Invalid(name, "harus UUID valid")
	}
	return id, nil
}

// queryIntPtr: nil kalau query kosong
func queryIntPtr(c *fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errs.Invalid(key, "harus angka")
	}
	return &n, nil
}

func queryPeriod(c *fiber.Ctx) (int, int, error) {
	month, err := queryIntPtr(c, "month")
	if err != nil {
		return 0, 0, err
	}
	year, err := queryIntPtr(c, "year")
	if err != nil {
		return 0, 0, err
	}
	fields := map[string][]string{}
	if month == nil {
		fields["month"] = []string{"wajib diisi"}
	}
	if year == nil {
		fields["year"] = []string{"wajib diisi"}
	}
	if len(fields) > 0 {
		return 0, 0, errs.InvalidFields(fields)
	}
	return *month, *year, nil
}

/* ===================== Reads ===================== */

// GET /salaries?month=&year=&page=&per_page=&sort_by=&order=
func (ctl *SalaryController) List(c *fiber.Ctx) error {
	month, err := queryIntPtr(c, "month")
	if err != nil {
		return errs.Respond(c, err)
	}
	year, err := queryIntPtr(c, "year")
	if err != nil {
		return errs.Respond(c, err)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	order := p.OrderColumn(salarySortColumns, "created_at")

	rows, total, err := ctl.Service.ListSalaries(c.UserContext(), month, year, p.Offset(), p.Limit(), order)
	if err != nil {
		return errs.Respond(c, err)
	}
	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "ok", dto.FromModels(rows), &meta)
}

// GET /salaries/export?month=&year=
func (ctl *SalaryController) Export(c *fiber.Ctx) error {
	month, year, err := queryPeriod(c)
	if err != nil {
		return errs.Respond(c, err)
	}
	report, err := ctl.Service.DriftReport(c.UserContext(), month, year)
	if err != nil {
		return errs.Respond(c, err)
	}
	buf, err := service.BuildSalaryWorkbook(report)
	if err != nil {
		log.Printf("[ERROR] export xlsx: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file export")
	}

	fileName := fmt.Sprintf("gaji_mentor_%04d_%02d.xlsx", year, month)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.Send(buf.Bytes())
}

// GET /salaries/sync?mentor_id=&month=&year=&recorded_sessions=
func (ctl *SalaryController) ComputeSync(c *fiber.Ctx) error {
	mentorID, err := uuid.Parse(strings.TrimSpace(c.Query("mentor_id")))
	if err != nil {
		return errs.Respond(c, errs.Invalid("mentor_id", "harus UUID valid"))
	}
	month, year, err := queryPeriod(c)
	if err != nil {
		return errs.Respond(c, err)
	}
	recorded, err := queryIntPtr(c, "recorded_sessions")
	if err != nil {
		return errs.Respond(c, err)
	}
	if recorded == nil {
		return errs.Respond(c, errs.Invalid("recorded_sessions", "wajib diisi"))
	}

	res, err := ctl.Service.ComputeSync(c.UserContext(), mentorID, month, year, *recorded)
	if err != nil {
		return errs.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}

// GET /salaries/mentor/:mentor_id
func (ctl *SalaryController) ListForMentor(c *fiber.Ctx) error {
	mentorID, err := parseUUIDParam(c, "mentor_id")
	if err != nil {
		return errs.Respond(c, err)
	}
	rows, err := ctl.Service.GetSalaryForMentor(c.UserContext(), mentorID)
	if err != nil {
		return errs.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// GET /salaries/:id
func (ctl *SalaryController) Detail(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return errs.Respond(c, err)
	}
	rec, err := ctl.Service.GetSalary(c.UserContext(), id)
	if err != nil {
		return errs.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(rec))
}

// GET /salaries/:id/sync
func (ctl *SalaryController) CheckSync(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return errs.Respond(c, err)
	}
	res, err := ctl.Service.CheckSalarySync(c.UserContext(), id)
	if err != nil {
		return errs.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromSalaryWithSync(res))
}

/* ===================== Writes ===================== */

// POST /salaries/draft
func (ctl *SalaryController) UpsertDraft(c *fiber.Ctx) error {
	var req dto.UpsertDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.BodyParseError(c)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	rec, err := ctl.Service.UpsertDraft(c.UserContext(), req.ToInput())
	if err != nil {
		return errs.Respond(c, err)
	}
	return helper.JsonOK(c, "Draft gaji tersimpan", dto.FromModel(rec))
}

// POST /salaries/:id/pay
// JSON {"proof_image": "..."} atau multipart dengan file proof_image (jpg/png/webp/pdf).
func (ctl *SalaryController) Pay(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return errs.Respond(c, err)
	}

	proof := ""
	uploaded := ""
	if helperOSS.IsMultipart(c) {
		fh, err := helperOSS.GetProofFile(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		if fh == nil {
			proof = c.FormValue("proof_image")
		} else {
			if ctl.Blob == nil {
				return helper.JsonError(c, fiber.StatusServiceUnavailable, "Penyimpanan file belum dikonfigurasi")
			}
			// cek dulu supaya tidak upload bukti untuk gaji yang sudah PAID / tidak ada
			cur, err := ctl.Service.GetSalary(c.UserContext(), id)
			if err != nil {
				return errs.Respond(c, err)
			}
			if cur.MentorSalaryStatus.IsPaid() {
				return errs.Respond(c, errs.Conflict("gaji %s sudah dibayar", id))
			}

			dir := fmt.Sprintf("%s/%04d/%02d", ctl.ProofDir, cur.MentorSalaryYear, cur.MentorSalaryMonth)
			url, err := ctl.Blob.UploadProof(c.UserContext(), dir, "salary-"+id.String(), fh)
			if err != nil {
				log.Printf("[ERROR] upload bukti gaji %s: %v", id, err)
				if _, ok := err.(*fiber.Error); ok {
					return helper.FromFiberError(c, err)
				}
				return errs.Respond(c, errs.Upstream(err, "upload proof"))
			}
			proof, uploaded = url, url
		}
	} else {
		var req dto.PayRequest
		if err := c.BodyParser(&req); err != nil {
			return helper.BodyParseError(c)
		}
		proof = req.ProofImage
	}

	rec, err := ctl.Service.Pay(c.UserContext(), id, proof)
	if err != nil {
		if uploaded != "" {
			ctl.discardUpload(uploaded)
		}
		return errs.Respond(c, err)
	}
	log.Printf("[INFO] pembayaran gaji %s oleh user %s", id, helper.ActorLabel(c))
	return helper.JsonUpdated(c, "Gaji berhasil dibayar", dto.FromModel(rec))
}

// discardUpload: hapus bukti yang sudah terlanjur di-upload.
// Context request bisa sudah selesai, jadi pakai background.
func (ctl *SalaryController) discardUpload(url string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ctl.Blob.DeleteByPublicURL(ctx, url); err != nil {
		log.Printf("[WARN] gagal hapus bukti %s: %v", url, err)
	}
}

// POST /salaries/:id/recalculate
func (ctl *SalaryController) Recalculate(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return errs.Respond(c, err)
	}
	res, err := ctl.Service.Recalculate(c.UserContext(), id)
	if err != nil {
		return errs.Respond(c, err)
	}
	log.Printf("[INFO] rekalkulasi gaji %s oleh user %s", id, helper.ActorLabel(c))
	return helper.JsonUpdated(c, "Jumlah sesi diperbarui", dto.FromRecalculate(res))
}
