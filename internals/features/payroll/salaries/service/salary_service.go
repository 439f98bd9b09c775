// file: internals/features/payroll/salaries/service/salary_service.go
package service

import (
	"context"
	"log"
	"strings"
	"time"

	"bimbel_backend/internals/features/payroll/errs"
	mentorModel "bimbel_backend/internals/features/payroll/mentors/model"
	"bimbel_backend/internals/features/payroll/salaries/model"
	"bimbel_backend/internals/features/payroll/salaries/repository"
	helper "bimbel_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

/* ===================== Collaborators ===================== */

type SessionCounter interface {
	CountPresentSessions(ctx context.Context, mentorRef uuid.UUID, month, year int) (int, error)
}

type MentorDirectory interface {
	Lookup(ctx context.Context, ref uuid.UUID) (*mentorModel.MentorModel, error)
	Resolve(ctx context.Context, ref uuid.UUID) (uuid.UUID, bool, error)
}

type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.MentorSalaryModel, error)
	List(ctx context.Context, f repository.ListFilter) ([]model.MentorSalaryModel, int64, error)
	UpsertDraft(ctx context.Context, in model.MentorSalaryModel) (*model.MentorSalaryModel, error)
	MarkPaid(ctx context.Context, id uuid.UUID, proof string, paidAt time.Time) (*model.MentorSalaryModel, error)
	RefreshSessions(ctx context.Context, id uuid.UUID, sessions int) (*model.MentorSalaryModel, error)
}

/* ===================== Inputs / Results ===================== */

// DraftInput. RatePerSession nil → snapshot tarif mentor saat ini.
// TotalSessions nil → pakai hitungan attendance saat ini.
type DraftInput struct {
	MentorID       uuid.UUID `json:"mentor_id" validate:"required"`
	Month          int       `json:"month" validate:"min=1,max=12"`
	Year           int       `json:"year" validate:"min=2000,max=2100"`
	TotalSessions  *int      `json:"total_sessions" validate:"omitempty,min=0,max=10000"`
	RatePerSession *int64    `json:"rate_per_session" validate:"omitempty,min=0,max=100000000"`
	Bonus          int64     `json:"bonus" validate:"min=0,max=1000000000000"`
	Deduction      int64     `json:"deduction" validate:"min=0,max=1000000000000"`
}

type RecalculateResult struct {
	OldSessions int                      `json:"old_sessions"`
	NewSessions int                      `json:"new_sessions"`
	Salary      *model.MentorSalaryModel `json:"salary"`
}

// SalaryWithSync dipakai read path & laporan drift.
type SalaryWithSync struct {
	Salary model.MentorSalaryModel `json:"salary"`
	Sync   SyncResult              `json:"sync"`
}

/* ===================== Service ===================== */

type SalaryService struct {
	Store     Store
	Counter   SessionCounter
	Mentors   MentorDirectory
	Validator *validator.Validate
	Now       func() time.Time
}

func NewSalaryService(store Store, counter SessionCounter, mentors MentorDirectory) *SalaryService {
	return &SalaryService{
		Store:     store,
		Counter:   counter,
		Mentors:   mentors,
		Validator: helper.NewValidator(),
		Now:       time.Now,
	}
}

func (s *SalaryService) validate(v interface{}) error {
	if err := s.Validator.Struct(v); err != nil {
		return errs.InvalidFields(helper.ValidationFieldErrors(err))
	}
	return nil
}

// ComputeSync: drift untuk angka tersimpan yang diberikan caller.
func (s *SalaryService) ComputeSync(ctx context.Context, mentorRef uuid.UUID, month, year, recorded int) (SyncResult, error) {
	fields := map[string][]string{}
	if mentorRef == uuid.Nil {
		fields["mentor_id"] = []string{"wajib diisi"}
	}
	if month < 1 || month > 12 {
		fields["month"] = []string{"harus 1..12"}
	}
	if year < 2000 || year > 2100 {
		fields["year"] = []string{"harus 2000..2100"}
	}
	if recorded < 0 {
		fields["recorded_sessions"] = []string{"minimal 0"}
	}
	if len(fields) > 0 {
		return SyncResult{}, errs.InvalidFields(fields)
	}

	realtime, err := s.Counter.CountPresentSessions(ctx, mentorRef, month, year)
	if err != nil {
		return SyncResult{}, err
	}
	return DetectDrift(recorded, realtime), nil
}

// CheckSalarySync: drift untuk record tersimpan (DRAFT maupun PAID).
func (s *SalaryService) CheckSalarySync(ctx context.Context, salaryID uuid.UUID) (SalaryWithSync, error) {
	rec, err := s.Store.GetByID(ctx, salaryID)
	if err != nil {
		return SalaryWithSync{}, err
	}
	realtime, err := s.Counter.CountPresentSessions(ctx, rec.MentorSalaryMentorID, rec.MentorSalaryMonth, rec.MentorSalaryYear)
	if err != nil {
		return SalaryWithSync{}, err
	}
	return SalaryWithSync{Salary: *rec, Sync: DetectDrift(rec.MentorSalaryTotalSessions, realtime)}, nil
}

// UpsertDraft: buat/ubah draft. Record PAID → state conflict.
func (s *SalaryService) UpsertDraft(ctx context.Context, in DraftInput) (*model.MentorSalaryModel, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	mentor, err := s.Mentors.Lookup(ctx, in.MentorID)
	if err != nil {
		return nil, err
	}

	rate := mentor.MentorRatePerSession
	if in.RatePerSession != nil {
		rate = *in.RatePerSession
	}

	var sessions int
	if in.TotalSessions != nil {
		sessions = *in.TotalSessions
	} else {
		sessions, err = s.Counter.CountPresentSessions(ctx, mentor.MentorID, in.Month, in.Year)
		if err != nil {
			return nil, err
		}
	}

	rec, err := model.ApplyDraft(model.MentorSalaryModel{
		MentorSalaryMentorID: mentor.MentorID,
		MentorSalaryMonth:    in.Month,
		MentorSalaryYear:     in.Year,
	}, model.DraftInputs{
		RatePerSession: rate,
		TotalSessions:  sessions,
		Bonus:          in.Bonus,
		Deduction:      in.Deduction,
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Store.UpsertDraft(ctx, rec)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] draft gaji mentor=%s periode=%02d/%d sessions=%d total=%d",
		mentor.MentorID, in.Month, in.Year, out.MentorSalaryTotalSessions, out.MentorSalaryTotalAmount)
	return out, nil
}

// Pay: DRAFT → PAID dengan bukti transfer. Guard akhir ada di UPDATE … WHERE status='DRAFT'.
func (s *SalaryService) Pay(ctx context.Context, salaryID uuid.UUID, proofImage string) (*model.MentorSalaryModel, error) {
	proofImage = strings.TrimSpace(proofImage)
	if proofImage == "" {
		return nil, errs.Invalid("proof_image", "wajib diisi")
	}

	cur, err := s.Store.GetByID(ctx, salaryID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	if _, err := model.TryPay(*cur, proofImage, now); err != nil {
		return nil, err
	}

	out, err := s.Store.MarkPaid(ctx, salaryID, proofImage, now)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] gaji %s dibayar total=%d", salaryID, out.MentorSalaryTotalAmount)
	return out, nil
}

// Recalculate: total_sessions ← hitungan attendance saat ini. Status tidak berubah.
func (s *SalaryService) Recalculate(ctx context.Context, salaryID uuid.UUID) (RecalculateResult, error) {
	cur, err := s.Store.GetByID(ctx, salaryID)
	if err != nil {
		return RecalculateResult{}, err
	}

	realtime, err := s.Counter.CountPresentSessions(ctx, cur.MentorSalaryMentorID, cur.MentorSalaryMonth, cur.MentorSalaryYear)
	if err != nil {
		return RecalculateResult{}, err
	}

	out, err := s.Store.RefreshSessions(ctx, salaryID, realtime)
	if err != nil {
		return RecalculateResult{}, err
	}
	if cur.MentorSalaryTotalSessions != realtime {
		log.Printf("[INFO] rekalkulasi gaji %s sessions %d → %d (status %s)",
			salaryID, cur.MentorSalaryTotalSessions, realtime, out.MentorSalaryStatus)
	}
	return RecalculateResult{
		OldSessions: cur.MentorSalaryTotalSessions,
		NewSessions: realtime,
		Salary:      out,
	}, nil
}

/* ===================== Read paths ===================== */

// ListSalaries: semua record periode (month/year nil = tanpa filter), dengan paging.
func (s *SalaryService) ListSalaries(ctx context.Context, month, year *int, offset, limit int, orderBy string) ([]model.MentorSalaryModel, int64, error) {
	fields := map[string][]string{}
	if month != nil && (*month < 1 || *month > 12) {
		fields["month"] = []string{"harus 1..12"}
	}
	if year != nil && (*year < 2000 || *year > 2100) {
		fields["year"] = []string{"harus 2000..2100"}
	}
	if len(fields) > 0 {
		return nil, 0, errs.InvalidFields(fields)
	}
	return s.Store.List(ctx, repository.ListFilter{
		Month:   month,
		Year:    year,
		OrderBy: orderBy,
		Offset:  offset,
		Limit:   limit,
	})
}

// GetSalaryForMentor: riwayat gaji satu mentor (ref di-resolve, fallback ke id mentah).
func (s *SalaryService) GetSalaryForMentor(ctx context.Context, mentorRef uuid.UUID) ([]model.MentorSalaryModel, error) {
	if mentorRef == uuid.Nil {
		return nil, errs.Invalid("mentor_id", "wajib diisi")
	}
	profileID := mentorRef
	id, found, err := s.Mentors.Resolve(ctx, mentorRef)
	if err != nil {
		return nil, err
	}
	if found {
		profileID = id
	}
	rows, _, err := s.Store.List(ctx, repository.ListFilter{MentorID: &profileID})
	return rows, err
}

func (s *SalaryService) GetSalary(ctx context.Context, id uuid.UUID) (*model.MentorSalaryModel, error) {
	return s.Store.GetByID(ctx, id)
}

// DriftReport: semua record periode + hasil sync masing-masing (dipakai CLI & endpoint list sync).
func (s *SalaryService) DriftReport(ctx context.Context, month, year int) ([]SalaryWithSync, error) {
	rows, _, err := s.ListSalaries(ctx, &month, &year, 0, 0, "")
	if err != nil {
		return nil, err
	}
	out := make([]SalaryWithSync, 0, len(rows))
	for _, r := range rows {
		realtime, err := s.Counter.CountPresentSessions(ctx, r.MentorSalaryMentorID, r.MentorSalaryMonth, r.MentorSalaryYear)
		if err != nil {
			return nil, err
		}
		out = append(out, SalaryWithSync{Salary: r, Sync: DetectDrift(r.MentorSalaryTotalSessions, realtime)})
	}
	return out, nil
}
