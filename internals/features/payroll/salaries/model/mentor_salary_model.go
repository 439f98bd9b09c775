// file: internals/features/payroll/salaries/model/mentor_salary_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Status ===================== */

type SalaryStatus string

const (
	SalaryStatusDraft SalaryStatus = "DRAFT"
	SalaryStatusPaid  SalaryStatus = "PAID"
)

func (s SalaryStatus) IsPaid() bool { return s == SalaryStatusPaid }

/* ===================== Model ===================== */

// MentorSalaryModel: satu record gaji per (mentor, month, year).
// TotalAmount selalu = rate × sessions + bonus − deduction (lihat ComputeTotal).
type MentorSalaryModel struct {
	MentorSalaryID uuid.UUID `json:"mentor_salary_id" gorm:"type:uuid;primaryKey;column:mentor_salary_id"`

	// Periode (unik per mentor)
	MentorSalaryMentorID uuid.UUID `json:"mentor_salary_mentor_id" gorm:"type:uuid;not null;uniqueIndex:uq_mentor_salary_period,priority:1;column:mentor_salary_mentor_id"`
	MentorSalaryMonth    int       `json:"mentor_salary_month" gorm:"not null;uniqueIndex:uq_mentor_salary_period,priority:2;index:idx_mentor_salary_month_year,priority:1;column:mentor_salary_month;check:chk_mentor_salary_month,mentor_salary_month BETWEEN 1 AND 12"`
	MentorSalaryYear     int       `json:"mentor_salary_year" gorm:"not null;uniqueIndex:uq_mentor_salary_period,priority:3;index:idx_mentor_salary_month_year,priority:2;column:mentor_salary_year"`

	// Komponen (rupiah)
	MentorSalaryRatePerSession int64 `json:"mentor_salary_rate_per_session" gorm:"not null;column:mentor_salary_rate_per_session"`
	MentorSalaryTotalSessions  int   `json:"mentor_salary_total_sessions" gorm:"not null;column:mentor_salary_total_sessions"`
	MentorSalaryBonus          int64 `json:"mentor_salary_bonus" gorm:"not null;column:mentor_salary_bonus"`
	MentorSalaryDeduction      int64 `json:"mentor_salary_deduction" gorm:"not null;column:mentor_salary_deduction"`
	MentorSalaryTotalAmount    int64 `json:"mentor_salary_total_amount" gorm:"not null;column:mentor_salary_total_amount"`

	// Status & bukti bayar (proof_image & paid_at terisi iff PAID)
	MentorSalaryStatus     SalaryStatus `json:"mentor_salary_status" gorm:"type:varchar(10);not null;index;column:mentor_salary_status;check:chk_mentor_salary_status,mentor_salary_status IN ('DRAFT','PAID')"`
	MentorSalaryProofImage *string      `json:"mentor_salary_proof_image,omitempty" gorm:"type:text;column:mentor_salary_proof_image"`
	MentorSalaryPaidAt     *time.Time   `json:"mentor_salary_paid_at,omitempty" gorm:"column:mentor_salary_paid_at"`

	// Timestamps
	MentorSalaryCreatedAt time.Time `json:"mentor_salary_created_at" gorm:"not null;autoCreateTime;column:mentor_salary_created_at"`
	MentorSalaryUpdatedAt time.Time `json:"mentor_salary_updated_at" gorm:"not null;autoUpdateTime;column:mentor_salary_updated_at"`
}

func (MentorSalaryModel) TableName() string { return "mentor_salaries" }

func (m *MentorSalaryModel) BeforeCreate(tx *gorm.DB) error {
	if m.MentorSalaryID == uuid.Nil {
		m.MentorSalaryID = uuid.New()
	}
	if m.MentorSalaryStatus == "" {
		m.MentorSalaryStatus = SalaryStatusDraft
	}
	return nil
}
