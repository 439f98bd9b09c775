// file: internals/features/payroll/salaries/dto/salary_dto.go
package dto

import (
	"time"

	"bimbel_backend/internals/features/payroll/salaries/model"
	"bimbel_backend/internals/features/payroll/salaries/service"

	"github.com/google/uuid"
)

/* ===================== Requests ===================== */

// UpsertDraftRequest: total_sessions & rate_per_session opsional
// (kosong → hitungan attendance / tarif mentor saat ini).
type UpsertDraftRequest struct {
	MentorID       string `json:"mentor_id" validate:"required,uuid"`
	Month          int    `json:"month" validate:"required,min=1,max=12"`
	Year           int    `json:"year" validate:"required,min=2000,max=2100"`
	TotalSessions  *int   `json:"total_sessions" validate:"omitempty,min=0,max=10000"`
	RatePerSession *int64 `json:"rate_per_session" validate:"omitempty,min=0,max=100000000"`
	Bonus          int64  `json:"bonus" validate:"min=0,max=1000000000000"`
	Deduction      int64  `json:"deduction" validate:"min=0,max=1000000000000"`
}

func (r UpsertDraftRequest) ToInput() service.DraftInput {
	id, _ := uuid.Parse(r.MentorID)
	return service.DraftInput{
		MentorID:       id,
		Month:          r.Month,
		Year:           r.Year,
		TotalSessions:  r.TotalSessions,
		RatePerSession: r.RatePerSession,
		Bonus:          r.Bonus,
		Deduction:      r.Deduction,
	}
}

// PayRequest: versi JSON (tanpa upload file)
type PayRequest struct {
	ProofImage string `json:"proof_image" validate:"required"`
}

/* ===================== Responses ===================== */

type SalaryResponse struct {
	ID             uuid.UUID  `json:"id"`
	MentorID       uuid.UUID  `json:"mentor_id"`
	Month          int        `json:"month"`
	Year           int        `json:"year"`
	RatePerSession int64      `json:"rate_per_session"`
	TotalSessions  int        `json:"total_sessions"`
	Bonus          int64      `json:"bonus"`
	Deduction      int64      `json:"deduction"`
	TotalAmount    int64      `json:"total_amount"`
	Status         string     `json:"status"`
	ProofImage     *string    `json:"proof_image,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func FromModel(m *model.MentorSalaryModel) SalaryResponse {
	return SalaryResponse{
		ID:             m.MentorSalaryID,
		MentorID:       m.MentorSalaryMentorID,
		Month:          m.MentorSalaryMonth,
		Year:           m.MentorSalaryYear,
		RatePerSession: m.MentorSalaryRatePerSession,
		TotalSessions:  m.MentorSalaryTotalSessions,
		Bonus:          m.MentorSalaryBonus,
		Deduction:      m.MentorSalaryDeduction,
		TotalAmount:    m.MentorSalaryTotalAmount,
		Status:         string(m.MentorSalaryStatus),
		ProofImage:     m.MentorSalaryProofImage,
		PaidAt:         m.MentorSalaryPaidAt,
		CreatedAt:      m.MentorSalaryCreatedAt,
		UpdatedAt:      m.MentorSalaryUpdatedAt,
	}
}

func FromModels(rows []model.MentorSalaryModel) []SalaryResponse {
	out := make([]SalaryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

type SalarySyncResponse struct {
	Salary SalaryResponse     `json:"salary"`
	Sync   service.SyncResult `json:"sync"`
}

func FromSalaryWithSync(s service.SalaryWithSync) SalarySyncResponse {
	return SalarySyncResponse{Salary: FromModel(&s.Salary), Sync: s.Sync}
}

type RecalculateResponse struct {
	OldSessions int            `json:"old_sessions"`
	NewSessions int            `json:"new_sessions"`
	Salary      SalaryResponse `json:"salary"`
}

func FromRecalculate(r service.RecalculateResult) RecalculateResponse {
	return RecalculateResponse{
		OldSessions: r.OldSessions,
		NewSessions: r.NewSessions,
		Salary:      FromModel(r.Salary),
	}
}
